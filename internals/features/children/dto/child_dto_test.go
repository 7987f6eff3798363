package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nestflow_backend/internals/features/children/model"
)

func TestDisplayStatusFor(t *testing.T) {
	cases := []struct {
		name       string
		enrollment string
		attendance string
		want       string
	}{
		{"waitlisted child hides attendance", model.EnrollmentWaitlist, model.StatusPresent, "On Waitlist"},
		{"pending child hides attendance", model.EnrollmentPending, model.StatusPresent, "Pending Enrollment"},
		{"archived child", model.EnrollmentArchived, model.StatusAbsent, "Archived"},
		{"enrolled and present", model.EnrollmentEnrolled, model.StatusPresent, "Present"},
		{"enrolled and checked out", model.EnrollmentEnrolled, model.StatusCheckedOut, "Checked Out"},
		{"enrolled and absent", model.EnrollmentEnrolled, model.StatusAbsent, "Absent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &model.ChildModel{EnrollmentStatus: tc.enrollment, Status: tc.attendance}
			assert.Equal(t, tc.want, DisplayStatusFor(m))
		})
	}
}

func TestNewChildResponseNeverNilAllergies(t *testing.T) {
	m := &model.ChildModel{FirstName: "Emma", LastName: "Stone", EnrollmentStatus: model.EnrollmentEnrolled}
	resp := NewChildResponse(m, nil)
	assert.NotNil(t, resp.Allergies)
	assert.Empty(t, resp.Allergies)
}
