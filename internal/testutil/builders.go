package testutil

import (
	"time"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
)

// UserParamsBuilder provides a fluent interface for building CreateUserParams for testing.
type UserParamsBuilder struct {
	params core.CreateUserParams
}

// NewUserParams creates a new UserParamsBuilder with sensible defaults.
func NewUserParams() *UserParamsBuilder {
	return &UserParamsBuilder{
		params: core.CreateUserParams{
			Email:     "homeowner@example.com",
			FirstName: "Pat",
			LastName:  "Walker",
			Role:      StringPtr("homeowner"),
		},
	}
}

// WithEmail sets the email.
func (b *UserParamsBuilder) WithEmail(email string) *UserParamsBuilder {
	b.params.Email = email
	return b
}

// WithAuthID sets the auth-service id.
func (b *UserParamsBuilder) WithAuthID(authID string) *UserParamsBuilder {
	b.params.AuthID = &authID
	return b
}

// WithRole sets the role.
func (b *UserParamsBuilder) WithRole(role string) *UserParamsBuilder {
	b.params.Role = &role
	return b
}

// WithName sets first and last name.
func (b *UserParamsBuilder) WithName(first, last string) *UserParamsBuilder {
	b.params.FirstName = first
	b.params.LastName = last
	return b
}

// WithPasswordHash sets the stored password hash.
func (b *UserParamsBuilder) WithPasswordHash(hash string) *UserParamsBuilder {
	b.params.PasswordHash = &hash
	return b
}

// Build returns the constructed CreateUserParams.
func (b *UserParamsBuilder) Build() core.CreateUserParams {
	return b.params
}

// PropertyRequestBuilder provides a fluent interface for building CreatePropertyRequest objects.
type PropertyRequestBuilder struct {
	req model.CreatePropertyRequest
}

// NewPropertyRequest creates a new PropertyRequestBuilder with sensible defaults.
func NewPropertyRequest() *PropertyRequestBuilder {
	return &PropertyRequestBuilder{
		req: model.CreatePropertyRequest{
			Address:    "4912 Dodge St",
			City:       "Omaha",
			State:      "NE",
			PostalCode: "68132",
		},
	}
}

// WithAddress sets the street address.
func (b *PropertyRequestBuilder) WithAddress(address string) *PropertyRequestBuilder {
	b.req.Address = address
	return b
}

// WithCity sets the city.
func (b *PropertyRequestBuilder) WithCity(city string) *PropertyRequestBuilder {
	b.req.City = city
	return b
}

// WithYearBuilt sets the construction year.
func (b *PropertyRequestBuilder) WithYearBuilt(year int) *PropertyRequestBuilder {
	b.req.YearBuilt = &year
	return b
}

// Build returns the constructed CreatePropertyRequest.
func (b *PropertyRequestBuilder) Build() model.CreatePropertyRequest {
	return b.req
}

// ReportRequestBuilder provides a fluent interface for building CreateReportRequest objects.
type ReportRequestBuilder struct {
	req model.CreateReportRequest
}

// NewReportRequest creates a new ReportRequestBuilder with sensible defaults.
func NewReportRequest(propertyID string) *ReportRequestBuilder {
	return &ReportRequestBuilder{
		req: model.CreateReportRequest{
			PropertyID: propertyID,
			Title:      "Hail damage to roof",
		},
	}
}

// WithTitle sets the report title.
func (b *ReportRequestBuilder) WithTitle(title string) *ReportRequestBuilder {
	b.req.Title = title
	return b
}

// WithDescription sets the report description.
func (b *ReportRequestBuilder) WithDescription(description string) *ReportRequestBuilder {
	b.req.Description = &description
	return b
}

// WithIncidentDate sets the incident date.
func (b *ReportRequestBuilder) WithIncidentDate(t time.Time) *ReportRequestBuilder {
	b.req.IncidentDate = &t
	return b
}

// Build returns the constructed CreateReportRequest.
func (b *ReportRequestBuilder) Build() model.CreateReportRequest {
	return b.req
}
