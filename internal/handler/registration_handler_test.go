package handler_test

import (
	"net/http"
	"testing"

	"tourism-service/internal/model"
	"tourism-service/pkg/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RegistrationHandlerTestSuite struct {
	suite.Suite
	e     *echo.Echo
	token string
}

func (suite *RegistrationHandlerTestSuite) SetupTest() {
	setupTestDB(suite.T())
	suite.e = newTestServer()
	suite.token = loginToken(suite.T(), suite.e)
}

func (suite *RegistrationHandlerTestSuite) register(body string) map[string]interface{} {
	rec := doRequest(suite.e, http.MethodPost, "/registrations", "", body)
	require.Equal(suite.T(), http.StatusOK, rec.Code, "registration failed: %s", rec.Body.String())
	return decodeBody(suite.T(), rec)
}

func (suite *RegistrationHandlerTestSuite) TestRegisterReturnsIDAndPrice() {
	id := createTour(suite.T(), suite.e, suite.token, `{"title":"Beach Day","price":49.99}`)

	body := suite.register(`{"tourId":"` + id + `","user":{"name":"Alice","email":"alice@test.com"}}`)
	assert.NotEmpty(suite.T(), body["registration_id"])
	assert.Equal(suite.T(), 49.99, body["tour_price"])

	var reg model.Registration
	require.NoError(suite.T(), database.GetDB().First(&reg, "id = ?", body["registration_id"]).Error)
	assert.Equal(suite.T(), id, reg.TourID)
	assert.False(suite.T(), reg.RegistrationDate.IsZero())
}

func (suite *RegistrationHandlerTestSuite) TestRegisterMissingFields() {
	id := createTour(suite.T(), suite.e, suite.token, `{"title":"Beach Day","price":49.99}`)

	cases := []struct {
		name string
		body string
	}{
		{"missing tourId", `{"user":{"name":"Alice","email":"alice@test.com"}}`},
		{"missing name", `{"tourId":"` + id + `","user":{"email":"alice@test.com"}}`},
		{"missing email", `{"tourId":"` + id + `","user":{"name":"Alice"}}`},
		{"missing user", `{"tourId":"` + id + `"}`},
	}

	for _, tc := range cases {
		rec := doRequest(suite.e, http.MethodPost, "/registrations", "", tc.body)
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code, tc.name)
	}

	// Nothing was written
	var users, regs int64
	require.NoError(suite.T(), database.GetDB().Model(&model.User{}).Count(&users).Error)
	require.NoError(suite.T(), database.GetDB().Model(&model.Registration{}).Count(&regs).Error)
	assert.Zero(suite.T(), users)
	assert.Zero(suite.T(), regs)
}

func (suite *RegistrationHandlerTestSuite) TestRegisterUnknownTourWritesNothing() {
	rec := doRequest(suite.e, http.MethodPost, "/registrations", "",
		`{"tourId":"no-such-tour","user":{"name":"Alice","email":"alice@test.com"}}`)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "tour not found", decodeBody(suite.T(), rec)["error"])

	var users, regs int64
	require.NoError(suite.T(), database.GetDB().Model(&model.User{}).Count(&users).Error)
	require.NoError(suite.T(), database.GetDB().Model(&model.Registration{}).Count(&regs).Error)
	assert.Zero(suite.T(), users, "no user row for a failed registration")
	assert.Zero(suite.T(), regs, "no registration row for a failed registration")
}

func (suite *RegistrationHandlerTestSuite) TestSameEmailReusesUser() {
	id := createTour(suite.T(), suite.e, suite.token, `{"title":"Beach Day","price":49.99}`)

	first := suite.register(`{"tourId":"` + id + `","user":{"name":"Alice","email":"alice@test.com"}}`)
	second := suite.register(`{"tourId":"` + id + `","user":{"name":"Alice Again","email":"alice@test.com"}}`)
	assert.NotEqual(suite.T(), first["registration_id"], second["registration_id"])

	var users, regs int64
	require.NoError(suite.T(), database.GetDB().Model(&model.User{}).Count(&users).Error)
	require.NoError(suite.T(), database.GetDB().Model(&model.Registration{}).Count(&regs).Error)
	assert.EqualValues(suite.T(), 1, users, "same email must map to one user row")
	assert.EqualValues(suite.T(), 2, regs)

	// The original name wins; a later registration does not rename the user
	var user model.User
	require.NoError(suite.T(), database.GetDB().Where("email = ?", "alice@test.com").First(&user).Error)
	assert.Equal(suite.T(), "Alice", user.Name)
}

func (suite *RegistrationHandlerTestSuite) TestListRegistrationsForTour() {
	id := createTour(suite.T(), suite.e, suite.token, `{"title":"Beach Day","price":49.99}`)
	suite.register(`{"tourId":"` + id + `","user":{"name":"Alice","email":"alice@test.com"}}`)
	suite.register(`{"tourId":"` + id + `","user":{"name":"Bob","email":"bob@test.com"}}`)

	rec := doRequest(suite.e, http.MethodGet, "/registrations/tour/"+id, suite.token, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	rows := decodeList(suite.T(), rec)
	require.Len(suite.T(), rows, 2)

	emails := []string{rows[0]["email"].(string), rows[1]["email"].(string)}
	assert.ElementsMatch(suite.T(), []string{"alice@test.com", "bob@test.com"}, emails)
	for _, row := range rows {
		assert.NotEmpty(suite.T(), row["id"])
		assert.NotEmpty(suite.T(), row["registration_date"])
		assert.NotEmpty(suite.T(), row["name"])
	}
}

func (suite *RegistrationHandlerTestSuite) TestListRegistrationsRequiresToken() {
	rec := doRequest(suite.e, http.MethodGet, "/registrations/tour/some-id", "", "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *RegistrationHandlerTestSuite) TestListRegistrationsUnknownTourIsEmpty() {
	rec := doRequest(suite.e, http.MethodGet, "/registrations/tour/no-such-tour", suite.token, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "[]\n", rec.Body.String())
}

func TestRegistrationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationHandlerTestSuite))
}
