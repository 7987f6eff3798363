package dto

import (
	"time"

	"github.com/google/uuid"

	"nestflow_backend/internals/features/health/model"
)

// ===================== REQUEST DTO =====================

type UpsertHealthProfileRequest struct {
	BloodType     *string `json:"bloodType" validate:"omitempty,max=5"`
	Conditions    *string `json:"conditions"`
	DoctorName    *string `json:"doctorName" validate:"omitempty,max=100"`
	DoctorPhone   *string `json:"doctorPhone" validate:"omitempty,max=30"`
	InsuranceInfo *string `json:"insuranceInfo"`
	Notes         *string `json:"notes"`
}

func (r *UpsertHealthProfileRequest) ApplyToModel(m *model.HealthProfileModel) {
	if r.BloodType != nil {
		m.BloodType = r.BloodType
	}
	if r.Conditions != nil {
		m.Conditions = r.Conditions
	}
	if r.DoctorName != nil {
		m.DoctorName = r.DoctorName
	}
	if r.DoctorPhone != nil {
		m.DoctorPhone = r.DoctorPhone
	}
	if r.InsuranceInfo != nil {
		m.InsuranceInfo = r.InsuranceInfo
	}
	if r.Notes != nil {
		m.Notes = r.Notes
	}
}

type CreateImmunizationRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	DateGiven   *string `json:"dateGiven" validate:"omitempty,datetime=2006-01-02"`
	NextDueDate *string `json:"nextDueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateImmunizationRequest) ToModel(childID uuid.UUID) (*model.ImmunizationModel, error) {
	m := &model.ImmunizationModel{
		ID:      uuid.New(),
		ChildID: childID,
		Name:    r.Name,
	}
	if r.DateGiven != nil {
		t, err := time.Parse("2006-01-02", *r.DateGiven)
		if err != nil {
			return nil, err
		}
		m.DateGiven = &t
	}
	if r.NextDueDate != nil {
		t, err := time.Parse("2006-01-02", *r.NextDueDate)
		if err != nil {
			return nil, err
		}
		m.NextDueDate = &t
	}
	return m, nil
}

type CreateMedicationRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Dosage       *string `json:"dosage" validate:"omitempty,max=100"`
	Frequency    *string `json:"frequency" validate:"omitempty,max=100"`
	Instructions *string `json:"instructions"`
}

func (r *CreateMedicationRequest) ToModel(childID uuid.UUID) *model.MedicationModel {
	return &model.MedicationModel{
		ID:           uuid.New(),
		ChildID:      childID,
		Name:         r.Name,
		Dosage:       r.Dosage,
		Frequency:    r.Frequency,
		Instructions: r.Instructions,
	}
}

// ===================== RESPONSE DTO =====================

type HealthProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	ChildID       uuid.UUID `json:"childId"`
	BloodType     *string   `json:"bloodType,omitempty"`
	Conditions    *string   `json:"conditions,omitempty"`
	DoctorName    *string   `json:"doctorName,omitempty"`
	DoctorPhone   *string   `json:"doctorPhone,omitempty"`
	InsuranceInfo *string   `json:"insuranceInfo,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewHealthProfileResponse(m *model.HealthProfileModel) *HealthProfileResponse {
	return &HealthProfileResponse{
		ID:            m.ID,
		ChildID:       m.ChildID,
		BloodType:     m.BloodType,
		Conditions:    m.Conditions,
		DoctorName:    m.DoctorName,
		DoctorPhone:   m.DoctorPhone,
		InsuranceInfo: m.InsuranceInfo,
		Notes:         m.Notes,
		UpdatedAt:     m.UpdatedAt,
	}
}

type ImmunizationResponse struct {
	ID          uuid.UUID  `json:"id"`
	ChildID     uuid.UUID  `json:"childId"`
	Name        string     `json:"name"`
	DateGiven   *time.Time `json:"dateGiven,omitempty"`
	NextDueDate *time.Time `json:"nextDueDate,omitempty"`
}

func NewImmunizationResponse(m *model.ImmunizationModel) *ImmunizationResponse {
	return &ImmunizationResponse{
		ID:          m.ID,
		ChildID:     m.ChildID,
		Name:        m.Name,
		DateGiven:   m.DateGiven,
		NextDueDate: m.NextDueDate,
	}
}

type MedicationResponse struct {
	ID               uuid.UUID  `json:"id"`
	ChildID          uuid.UUID  `json:"childId"`
	Name             string     `json:"name"`
	Dosage           *string    `json:"dosage,omitempty"`
	Frequency        *string    `json:"frequency,omitempty"`
	Instructions     *string    `json:"instructions,omitempty"`
	LastAdministered *time.Time `json:"lastAdministered,omitempty"`
}

func NewMedicationResponse(m *model.MedicationModel) *MedicationResponse {
	return &MedicationResponse{
		ID:               m.ID,
		ChildID:          m.ChildID,
		Name:             m.Name,
		Dosage:           m.Dosage,
		Frequency:        m.Frequency,
		Instructions:     m.Instructions,
		LastAdministered: m.LastAdministered,
	}
}
