package dto

import (
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madrasahku_backend/internals/configs"
	"madrasahku_backend/internals/features/people/model"
	"madrasahku_backend/internals/helpers/secure"
)

func setTestKey(t *testing.T) {
	t.Helper()
	var k fernet.Key
	require.NoError(t, k.Generate())
	old := configs.FernetKey
	configs.FernetKey = k.Encode()
	t.Cleanup(func() { configs.FernetKey = old })
}

func samplePerson(t *testing.T) model.PersonModel {
	t.Helper()
	phoneEnc, err := secure.Encrypt("+8801712345678")
	require.NoError(t, err)
	nidEnc, err := secure.Encrypt("1990123456789")
	require.NoError(t, err)
	cls := "hifz-1"
	return model.PersonModel{
		PersonID:         uuid.New(),
		MadrasaID:        uuid.New(),
		AccType:          "student",
		FullName:         "Abdul Karim",
		ClassName:        &cls,
		GuardianPhoneEnc: &phoneEnc,
		NationalIDEnc:    &nidEnc,
		EnrolledAt:       time.Now().UTC(),
	}
}

func TestFromModelWithProtected(t *testing.T) {
	setTestKey(t)
	p := samplePerson(t)

	resp := FromModel(&p, true)
	assert.Equal(t, p.PersonID, resp.PersonID)
	assert.Equal(t, "Abdul Karim", resp.FullName)
	assert.Equal(t, "+8801712345678", resp.GuardianPhone)
	assert.Equal(t, "1990123456789", resp.NationalID)
}

func TestFromModelWithoutProtected(t *testing.T) {
	setTestKey(t)
	p := samplePerson(t)

	resp := FromModel(&p, false)
	assert.Empty(t, resp.GuardianPhone)
	assert.Empty(t, resp.NationalID)
}

func TestFromModelUndecryptableDegrades(t *testing.T) {
	setTestKey(t)
	p := samplePerson(t)
	bad := "corrupted-token"
	p.GuardianPhoneEnc = &bad

	resp := FromModel(&p, true)
	assert.Empty(t, resp.GuardianPhone)
	assert.Equal(t, "1990123456789", resp.NationalID)
}

func TestFromModels(t *testing.T) {
	setTestKey(t)
	rows := []model.PersonModel{samplePerson(t), samplePerson(t)}
	out := FromModels(rows, false)
	assert.Len(t, out, 2)
}
