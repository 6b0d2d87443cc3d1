package fieldauth

// Canonical participant record paths. The table below is data, not policy
// code: changing who sees what is an edit here, nothing else.
//
// Note the instructor profile lists parentInfo.workPhone under both visible
// and hidden; hidden wins. The guest profile hides the bare container paths
// (parentInfo, medicalInfo, comments) rather than each leaf, which only
// blanks those subtrees because guest's visible list never names a leaf
// inside them.
var profiles = map[Role]*profile{
	RoleAdmin: newProfile(
		[]string{
			"personalInfo.firstName",
			"personalInfo.lastName",
			"personalInfo.birthDate",
			"personalInfo.address",
			"personalInfo.capabilities",
			"personalInfo.photoURL",
			"medicalInfo.allergies",
			"medicalInfo.notes",
			"parentInfo.name",
			"parentInfo.email",
			"parentInfo.phone",
			"parentInfo.workPhone",
			"parentInfo.address",
			"assignment.teamId",
			"assignment.instructorId",
			"assignment.vehicleId",
			"comments.organization",
			"comments.parent",
			"attendance",
		},
		[]string{
			"personalInfo.firstName",
			"personalInfo.lastName",
			"personalInfo.birthDate",
			"personalInfo.address",
			"personalInfo.capabilities",
			"personalInfo.photoURL",
			"medicalInfo.allergies",
			"medicalInfo.notes",
			"parentInfo.name",
			"parentInfo.email",
			"parentInfo.phone",
			"parentInfo.workPhone",
			"parentInfo.address",
			"assignment.teamId",
			"assignment.instructorId",
			"assignment.vehicleId",
			"comments.organization",
			"comments.parent",
			"attendance",
		},
		nil,
	),

	RoleInstructor: newProfile(
		[]string{
			"personalInfo.firstName",
			"personalInfo.lastName",
			"personalInfo.birthDate",
			"personalInfo.address",
			"personalInfo.capabilities",
			"personalInfo.photoURL",
			"medicalInfo.allergies",
			"medicalInfo.notes",
			"parentInfo.name",
			"parentInfo.email",
			"parentInfo.phone",
			"parentInfo.workPhone",
			"assignment.teamId",
			"assignment.instructorId",
			"assignment.vehicleId",
			"comments.organization",
			"comments.parent",
			"attendance",
		},
		[]string{
			"personalInfo.capabilities",
			"medicalInfo.notes",
			"assignment.teamId",
			"assignment.vehicleId",
			"comments.organization",
			"attendance",
		},
		[]string{
			"parentInfo.address",
			"parentInfo.workPhone",
		},
	),

	RoleParent: newProfile(
		[]string{
			"personalInfo.firstName",
			"personalInfo.lastName",
			"personalInfo.birthDate",
			"personalInfo.photoURL",
			"parentInfo.name",
			"parentInfo.email",
			"parentInfo.phone",
			"parentInfo.address",
			"assignment.teamId",
			"comments.parent",
			"attendance",
		},
		[]string{
			"parentInfo.email",
			"parentInfo.phone",
			"parentInfo.address",
			"comments.parent",
		},
		[]string{
			"personalInfo.capabilities",
			"medicalInfo.notes",
			"comments.organization",
		},
	),

	RoleGuest: newProfile(
		[]string{
			"personalInfo.firstName",
			"assignment.teamId",
		},
		nil,
		[]string{
			"parentInfo",
			"medicalInfo",
			"comments",
		},
	),
}
