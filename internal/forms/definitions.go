package forms

import (
	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
)

// RequiredAgreements are the acknowledgment flags a resident must set before
// signing a weekend pass request.
var RequiredAgreements = []string{
	"agreementSobriety",
	"agreementCurfew",
	"agreementCheckIn",
	"agreementLiability",
}

func signatureOK(p domain.Payload) bool {
	return len(p.Str("signature")) > 2
}

// Intake is the general treatment-intake form. The wizard branches on
// patientType: new patients skip the records-transfer step and go straight
// to the final contact step.
var Intake = Schema{
	FormType: domain.FormIntake,
	Required: []string{"firstName", "lastName", "phone", "reason"},
	Steps: []StepSpec{
		{ID: "contact", Fields: []string{"firstName", "lastName", "phone"}},
		{
			ID:     "patient-type",
			Fields: []string{"patientType"},
			Next: func(p domain.Payload) string {
				if p.Str("patientType") == "new" {
					return "message"
				}
				return "records"
			},
		},
		{ID: "records", Fields: []string{"previousProvider"}},
		{ID: "message", Fields: []string{"reason"}},
	},
}

// YouthServices is the referral form for youth programs. Individual
// referrals and entire-house referrals require different detail fields.
var YouthServices = Schema{
	FormType: domain.FormYouthServices,
	Required: []string{"referrerName", "organizationName", "referralType"},
	Conditional: func(p domain.Payload) []string {
		switch p.Str("referralType") {
		case "individual":
			return []string{"youthName", "youthAge"}
		case "entire-house":
			return []string{"numberOfYouth", "ageRange"}
		}
		return nil
	},
	Steps: []StepSpec{
		{ID: "referrer", Fields: []string{"referrerName", "organizationName"}},
		{
			ID:     "referral-type",
			Fields: []string{"referralType"},
			Next: func(p domain.Payload) string {
				if p.Str("referralType") == "entire-house" {
					return "house-details"
				}
				return "youth-details"
			},
		},
		{ID: "youth-details", Fields: []string{"youthName", "youthAge"}, Next: func(domain.Payload) string { return "review" }},
		{ID: "house-details", Fields: []string{"numberOfYouth", "ageRange"}},
		{ID: "review"},
	},
}

// WeekendPass is the resident weekend-pass request form.
var WeekendPass = Schema{
	FormType: domain.FormWeekendPass,
	Required: []string{
		"residentName", "roomNumber", "phone",
		"departureDate", "departureTime", "returnDate", "returnTime",
		"destination", "transportation",
		"emergencyContact", "emergencyPhone",
	},
	Flags: RequiredAgreements,
	Extra: func(p domain.Payload) []string {
		if !signatureOK(p) {
			return []string{"signature"}
		}
		return nil
	},
	Steps: []StepSpec{
		{ID: "resident-info", Fields: []string{"residentName", "roomNumber", "phone"}},
		{ID: "pass-details", Fields: []string{"departureDate", "departureTime", "returnDate", "returnTime", "destination", "transportation"}},
		{ID: "emergency-contact", Fields: []string{"emergencyContact", "emergencyPhone"}},
		{
			ID: "review-sign",
			Extra: func(p domain.Payload) bool {
				for _, f := range RequiredAgreements {
					if !p.Bool(f) {
						return false
					}
				}
				return signatureOK(p)
			},
		},
	},
}

// InsuranceVerification is the coverage pre-check form.
var InsuranceVerification = Schema{
	FormType: domain.FormInsuranceVerification,
	Required: []string{"firstName", "lastName", "insuranceProvider"},
	Steps: []StepSpec{
		{ID: "patient", Fields: []string{"firstName", "lastName"}},
		{ID: "insurance", Fields: []string{"insuranceProvider"}},
	},
}

// ProgressReport is the weekly resident progress form submitted by staff
// or house managers.
var ProgressReport = Schema{
	FormType: domain.FormProgressReport,
	Required: []string{"residentName", "weekOf", "progressNotes"},
	Steps: []StepSpec{
		{ID: "resident", Fields: []string{"residentName", "weekOf"}},
		{ID: "report", Fields: []string{"progressNotes"}},
	},
}

// HandbookAck is the resident handbook sign-off form.
var HandbookAck = Schema{
	FormType: domain.FormHandbookAck,
	Required: []string{"residentName"},
	Extra: func(p domain.Payload) []string {
		if !signatureOK(p) {
			return []string{"signature"}
		}
		return nil
	},
	Steps: []StepSpec{
		{ID: "resident", Fields: []string{"residentName"}},
		{ID: "sign", Extra: signatureOK},
	},
}
