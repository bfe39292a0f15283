package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyStringPtr(s string) *string { return &s }
func propertyIntPtr(i int) *int          { return &i }

func TestCreatePropertyRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreatePropertyRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			req: CreatePropertyRequest{
				Address:    "4912 Dodge St",
				City:       "Omaha",
				State:      "NE",
				PostalCode: "68132",
				YearBuilt:  propertyIntPtr(1954),
			},
			wantErr: false,
		},
		{
			name: "missing address",
			req: CreatePropertyRequest{
				City:       "Omaha",
				State:      "NE",
				PostalCode: "68132",
			},
			wantErr: true,
			errMsg:  "address is required",
		},
		{
			name: "missing city",
			req: CreatePropertyRequest{
				Address:    "4912 Dodge St",
				State:      "NE",
				PostalCode: "68132",
			},
			wantErr: true,
			errMsg:  "city is required",
		},
		{
			name: "year built out of range",
			req: CreatePropertyRequest{
				Address:    "4912 Dodge St",
				City:       "Omaha",
				State:      "NE",
				PostalCode: "68132",
				YearBuilt:  propertyIntPtr(1620),
			},
			wantErr: true,
			errMsg:  "year_built is out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUpdatePropertyRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     UpdatePropertyRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty update is valid",
			req:     UpdatePropertyRequest{},
			wantErr: false,
		},
		{
			name: "valid update with all fields",
			req: UpdatePropertyRequest{
				Address:    propertyStringPtr("6001 Dodge St"),
				City:       propertyStringPtr("Omaha"),
				State:      propertyStringPtr("NE"),
				PostalCode: propertyStringPtr("68182"),
				YearBuilt:  propertyIntPtr(1971),
			},
			wantErr: false,
		},
		{
			name: "blank address",
			req: UpdatePropertyRequest{
				Address: propertyStringPtr("   "),
			},
			wantErr: true,
			errMsg:  "address cannot be empty",
		},
		{
			name: "blank city",
			req: UpdatePropertyRequest{
				City: propertyStringPtr(""),
			},
			wantErr: true,
			errMsg:  "city cannot be empty",
		},
		{
			name: "blank state",
			req: UpdatePropertyRequest{
				State: propertyStringPtr(" "),
			},
			wantErr: true,
			errMsg:  "state cannot be empty",
		},
		{
			name: "blank postal code",
			req: UpdatePropertyRequest{
				PostalCode: propertyStringPtr(""),
			},
			wantErr: true,
			errMsg:  "postal_code cannot be empty",
		},
		{
			name: "year built out of range",
			req: UpdatePropertyRequest{
				YearBuilt: propertyIntPtr(1620),
			},
			wantErr: true,
			errMsg:  "year_built is out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUpdatePropertyRequest_HasUpdates(t *testing.T) {
	t.Parallel()

	assert.False(t, (&UpdatePropertyRequest{}).HasUpdates())
	assert.True(t, (&UpdatePropertyRequest{Address: propertyStringPtr("6001 Dodge St")}).HasUpdates())
	assert.True(t, (&UpdatePropertyRequest{YearBuilt: propertyIntPtr(1971)}).HasUpdates())
}
