package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBody(id, owner string) map[string]interface{} {
	return map[string]interface{}{
		"donorProfileId": id,
		"userId":         owner,
		"bloodType":      "A_POS",
		"location":       "Suva",
		"latitude":       -18.1416,
		"longitude":      178.4419,
	}
}

func TestCreateDonorProfile(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", createBody("dp-1", "u-1"))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Donor profile created successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "dp-1", data["id"])
	assert.EqualValues(t, 0, data["donation_count"])
}

func TestCreateDonorProfile_Errors(t *testing.T) {
	env := newTestEnv(t)

	badType := createBody("dp-1", "u-1")
	badType["bloodType"] = "O+"
	noCoords := createBody("dp-1", "u-1")
	delete(noCoords, "latitude")
	noLocation := createBody("dp-1", "u-1")
	noLocation["location"] = ""

	tests := []struct {
		name   string
		sub    string
		body   map[string]interface{}
		status int
	}{
		{"anonymous", "", createBody("dp-1", "u-1"), http.StatusUnauthorized},
		{"other owner", "u-2", createBody("dp-1", "u-1"), http.StatusForbidden},
		{"invalid blood type", "u-1", badType, http.StatusBadRequest},
		{"missing coordinates", "u-1", noCoords, http.StatusBadRequest},
		{"missing location", "u-1", noLocation, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := env.do(t, http.MethodPost, "/api/donor-profiles", tt.sub, tt.body)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestCreateDonorProfile_InvalidBloodTypeListsValidValues(t *testing.T) {
	env := newTestEnv(t)
	body := createBody("dp-1", "u-1")
	body["bloodType"] = "Z_POS"

	status, resp := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", body)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, resp["success"])
	msg := resp["error"].(string)
	for _, bt := range []string{"A_POS", "A_NEG", "B_POS", "B_NEG", "AB_POS", "AB_NEG", "O_POS", "O_NEG"} {
		assert.Contains(t, msg, bt)
	}
}

func TestCreateDonorProfile_Conflict(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", createBody("dp-1", "u-1"))
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", createBody("dp-1", "u-1"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])
}

func TestDonorProfileLifecycle(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", createBody("dp-1", "u-1"))
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodGet, "/api/donor-profiles/dp-1", "u-2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u-1", body["data"].(map[string]interface{})["user_id"])

	status, body = env.do(t, http.MethodGet, "/api/donor-profiles/me", "u-1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dp-1", body["data"].(map[string]interface{})["id"])

	status, _ = env.do(t, http.MethodGet, "/api/donor-profiles/missing", "u-1", nil)
	assert.Equal(t, http.StatusNotFound, status)

	patch := map[string]interface{}{"location": "Lautoka"}
	status, _ = env.do(t, http.MethodPatch, "/api/donor-profiles/dp-1", "u-2", patch)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = env.do(t, http.MethodPatch, "/api/donor-profiles/dp-1", "u-1", patch)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Lautoka", body["data"].(map[string]interface{})["location"])

	donated := time.Now().Add(-24 * time.Hour).UTC()
	status, body = env.do(t, http.MethodPost, "/api/donor-profiles/dp-1/donations", "u-1", map[string]interface{}{"donatedAt": donated})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["donation_count"])

	status, body = env.do(t, http.MethodPost, "/api/donor-profiles/dp-1/donations", "u-1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["data"].(map[string]interface{})["donation_count"])

	status, _ = env.do(t, http.MethodDelete, "/api/donor-profiles/dp-1", "u-2", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = env.do(t, http.MethodDelete, "/api/donor-profiles/dp-1", "u-1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _ = env.do(t, http.MethodGet, "/api/donor-profiles/dp-1", "u-1", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

func TestCreateDonorProfile_DateOnlyLastDonation(t *testing.T) {
	env := newTestEnv(t)
	body := createBody("dp-1", "u-1")
	body["lastDonationDate"] = "2025-03-14"

	status, resp := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", body)
	require.Equal(t, http.StatusCreated, status, resp)
	data := resp["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["last_donation_date"].(string), "2025-03-14"))
}

func TestCreateDonorProfile_MalformedLastDonation(t *testing.T) {
	env := newTestEnv(t)
	body := createBody("dp-1", "u-1")
	body["lastDonationDate"] = "14/03/2025"

	status, resp := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", body)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp["error"], "lastDonationDate")
}

func TestDonorProfile_DateOnlyEditAndDonation(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", createBody("dp-1", "u-1"))
	require.Equal(t, http.StatusCreated, status)

	status, resp := env.do(t, http.MethodPatch, "/api/donor-profiles/dp-1", "u-1",
		map[string]interface{}{"lastDonationDate": "2024-11-02"})
	require.Equal(t, http.StatusOK, status, resp)
	assert.True(t, strings.HasPrefix(resp["data"].(map[string]interface{})["last_donation_date"].(string), "2024-11-02"))

	donated := time.Now().AddDate(0, 0, -2).UTC().Format("2006-01-02")
	status, resp = env.do(t, http.MethodPost, "/api/donor-profiles/dp-1/donations", "u-1",
		map[string]interface{}{"donatedAt": donated})
	require.Equal(t, http.StatusOK, status, resp)
	assert.EqualValues(t, 1, resp["data"].(map[string]interface{})["donation_count"])

	status, resp = env.do(t, http.MethodPost, "/api/donor-profiles/dp-1/donations", "u-1",
		map[string]interface{}{"donatedAt": "yesterday"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp["error"], "donatedAt")
}

func TestParseDate(t *testing.T) {
	blank := "  "
	got, err := parseDate("lastDonationDate", &blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDate("lastDonationDate", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	day := "2025-03-14"
	got, err = parseDate("lastDonationDate", &day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *got)

	stamp := "2025-03-14T09:30:00+02:00"
	got, err = parseDate("lastDonationDate", &stamp)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 7, 30, 0, 0, time.UTC), *got)
}
