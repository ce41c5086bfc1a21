package model

// FactoidType identifies one of the closed set of biographical assertion kinds
type FactoidType string

const (
	FactoidBirth              FactoidType = "BIRTH"
	FactoidDioceseOrigin      FactoidType = "DIOCESE_ORIGIN"
	FactoidUniversityStudy    FactoidType = "UNIVERSITY_STUDY"
	FactoidAcademicGrade      FactoidType = "ACADEMIC_GRADE"
	FactoidCollegeMembership  FactoidType = "COLLEGE_MEMBERSHIP"
	FactoidSecularPosition    FactoidType = "SECULAR_POSITION"
	FactoidRegularOrder       FactoidType = "REGULAR_ORDER"
	FactoidUniversityTeaching FactoidType = "UNIVERSITY_TEACHING"
	FactoidFamilyRelation     FactoidType = "FAMILY_RELATION"
	FactoidStudentTeacher     FactoidType = "STUDENT_TEACHER"
	FactoidAuthorship         FactoidType = "AUTHORSHIP"
	FactoidActivityPeriod     FactoidType = "ACTIVITY_PERIOD"
	FactoidLifePeriod         FactoidType = "LIFE_PERIOD"
)

// FactoidTypeDescriptions is the closed catalog of factoid types, pre-loaded
// into the store at startup
var FactoidTypeDescriptions = map[FactoidType]string{
	FactoidBirth:              "Birth / place of origin",
	FactoidDioceseOrigin:      "Diocesan origin",
	FactoidUniversityStudy:    "University studies",
	FactoidAcademicGrade:      "Academic grade",
	FactoidCollegeMembership:  "College membership",
	FactoidSecularPosition:    "Secular ecclesiastical position",
	FactoidRegularOrder:       "Regular order membership",
	FactoidUniversityTeaching: "University teaching",
	FactoidFamilyRelation:     "Family relation",
	FactoidStudentTeacher:     "Student-teacher relation",
	FactoidAuthorship:         "Textual production",
	FactoidActivityPeriod:     "Activity period",
	FactoidLifePeriod:         "Life period",
}

// Role identifies how a person participates in a factoid
type Role string

const (
	RoleSubject       Role = "SUBJECT"
	RoleStudent       Role = "STUDENT"
	RoleTeacher       Role = "TEACHER"
	RoleMember        Role = "MEMBER"
	RoleAuthor        Role = "AUTHOR"
	RoleFamilyMember  Role = "FAMILY_MEMBER"
	RoleRelatedPerson Role = "RELATED_PERSON"
	RoleHolder        Role = "HOLDER"
)

// RoleDescriptions is the closed catalog of participant roles
var RoleDescriptions = map[Role]string{
	RoleSubject:       "Main subject of the factoid",
	RoleStudent:       "Student",
	RoleTeacher:       "Teacher / master",
	RoleMember:        "Member",
	RoleAuthor:        "Author",
	RoleFamilyMember:  "Family member",
	RoleRelatedPerson: "Related person",
	RoleHolder:        "Position holder",
}

// ObjectTypeLiteraryWork is the single object type currently in use
const ObjectTypeLiteraryWork = "literary_work"

// Qualifier marks the precision of a date endpoint
type Qualifier string

const (
	QualifierSimple Qualifier = "SIMPLE"
	QualifierBefore Qualifier = "BEFORE"
	QualifierAfter  Qualifier = "AFTER"
	QualifierNear   Qualifier = "NEAR"
)

// NormalizeQualifier maps a raw qualifier string to a Qualifier, defaulting
// blanks to SIMPLE. Unknown values pass through so they remain visible in the
// output rather than being silently collapsed.
func NormalizeQualifier(raw string) Qualifier {
	if raw == "" {
		return QualifierSimple
	}
	return Qualifier(raw)
}
