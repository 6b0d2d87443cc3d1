package email

import (
	"context"
)

type Service interface {
	SendWeeklySummary(ctx context.Context, to []string, subject, body string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}
