package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblogdev/blogapi/internal/model"
)

func sampleUser() *model.User {
	return &model.User{
		ID:          uuid.New(),
		Username:    "writer",
		Email:       "writer@example.com",
		PhoneNumber: "+1555000",
	}
}

func TestNewUserDetailVersioning(t *testing.T) {
	user := sampleUser()

	v1 := NewUserDetail(user, 0, V1)
	assert.Nil(t, v1.PhoneNumber)

	v2 := NewUserDetail(user, 0, V2)
	require.NotNil(t, v2.PhoneNumber)
	assert.Equal(t, "+1555000", *v2.PhoneNumber)
}

func TestUserDetailV1OmitsPhoneNumberField(t *testing.T) {
	detail := NewUserDetail(sampleUser(), 0, V1)

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "phone_number")
}

func TestUserDetailV2IncludesPhoneNumberField(t *testing.T) {
	detail := NewUserDetail(sampleUser(), 0, V2)

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "phone_number")
}
