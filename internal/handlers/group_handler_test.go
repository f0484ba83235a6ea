package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "twofactor-vault/internal/errors"
	"twofactor-vault/internal/models"
	"twofactor-vault/internal/services"
	"twofactor-vault/internal/services/service_mocks"

	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type GroupHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockGroupServiceInterface
	handler     *GroupHandler
	echo        *echo.Echo
	userID      uuid.UUID
}

func TestGroupHandlerSuite(t *testing.T) {
	suite.Run(t, new(GroupHandlerTestSuite))
}

func (s *GroupHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockGroupServiceInterface(s.ctrl)
	s.handler = NewGroupHandler(s.mockService)
	s.echo = echo.New()
	s.echo.Validator = &CustomValidator{validator: validator.New()}
	s.userID = uuid.New()
}

func (s *GroupHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *GroupHandlerTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *GroupHandlerTestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var response apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error.Code
}

func (s *GroupHandlerTestSuite) TestListGroups_Success() {
	groups := []models.Group{
		{ID: 0, Name: "All", AccountCount: 3},
		{ID: 1, Name: "Work", AccountCount: 2},
	}
	s.mockService.EXPECT().List(s.userID, "en").Return(groups, nil)

	c, rec := s.newContext(http.MethodGet, "/groups", "")
	s.NoError(s.handler.ListGroups(c))
	s.Equal(http.StatusOK, rec.Code)

	var response []models.Group
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response, 2)
	s.Equal(uint(0), response[0].ID)
	s.Equal("All", response[0].Name)
	s.Equal(int64(3), response[0].AccountCount)
}

func (s *GroupHandlerTestSuite) TestListGroups_LocaleFromHeader() {
	s.mockService.EXPECT().List(s.userID, "fr").Return([]models.Group{}, nil)

	c, rec := s.newContext(http.MethodGet, "/groups", "")
	c.Request().Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	s.NoError(s.handler.ListGroups(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *GroupHandlerTestSuite) TestListGroups_Unauthenticated() {
	c, rec := s.newContext(http.MethodGet, "/groups", "")
	c.Set("user_id", nil)

	s.NoError(s.handler.ListGroups(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthMissingToken), s.errorCode(rec))
}

func (s *GroupHandlerTestSuite) TestCreateGroup_Success() {
	created := &models.Group{ID: 1, Name: "Work"}
	s.mockService.EXPECT().Create(s.userID, "Work").Return(created, nil)

	c, rec := s.newContext(http.MethodPost, "/groups", `{"name":"Work"}`)
	s.NoError(s.handler.CreateGroup(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response models.Group
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(uint(1), response.ID)
	s.Equal("Work", response.Name)
}

func (s *GroupHandlerTestSuite) TestCreateGroup_MissingName() {
	c, rec := s.newContext(http.MethodPost, "/groups", `{}`)
	s.NoError(s.handler.CreateGroup(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *GroupHandlerTestSuite) TestCreateGroup_WhitespaceOnlyName() {
	// A whitespace-only name passes the DTO tags but fails domain
	// validation; the service reports that with a wrapped sentinel
	nameErr := fmt.Errorf("%w: %v", services.ErrGroupNameInvalid, models.ErrGroupNameEmpty)
	s.mockService.EXPECT().Create(s.userID, "   ").Return(nil, nameErr)

	c, rec := s.newContext(http.MethodPost, "/groups", `{"name":"   "}`)
	s.NoError(s.handler.CreateGroup(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(string(apierrors.GroupNameInvalid), s.errorCode(rec))
}

func (s *GroupHandlerTestSuite) TestCreateGroup_NameTaken() {
	s.mockService.EXPECT().Create(s.userID, "Work").Return(nil, services.ErrGroupNameTaken)

	c, rec := s.newContext(http.MethodPost, "/groups", `{"name":"Work"}`)
	s.NoError(s.handler.CreateGroup(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(string(apierrors.GroupNameTaken), s.errorCode(rec))
}

func (s *GroupHandlerTestSuite) TestGetGroup_Success() {
	group := &models.Group{ID: 5, Name: "Work", AccountCount: 2}
	s.mockService.EXPECT().View(uint(5), s.userID).Return(group, nil)

	c, rec := s.newContext(http.MethodGet, "/groups/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.GetGroup(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *GroupHandlerTestSuite) TestGetGroup_InvalidID() {
	for _, id := range []string{"abc", "-1", "0"} {
		c, rec := s.newContext(http.MethodGet, "/groups/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)

		s.NoError(s.handler.GetGroup(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(string(apierrors.GroupInvalidID), s.errorCode(rec))
	}
}

func (s *GroupHandlerTestSuite) TestGetGroup_NotFound() {
	s.mockService.EXPECT().View(uint(5), s.userID).Return(nil, services.ErrGroupNotFound)

	c, rec := s.newContext(http.MethodGet, "/groups/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.GetGroup(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apierrors.GroupNotFound), s.errorCode(rec))
}

func (s *GroupHandlerTestSuite) TestGetGroup_ForeignGroupLooksLikeNotFound() {
	s.mockService.EXPECT().View(uint(5), s.userID).Return(nil, services.ErrGroupNotOwned)

	c, rec := s.newContext(http.MethodGet, "/groups/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.GetGroup(c))
	// Ownership failures are reported exactly like missing groups
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apierrors.GroupNotFound), s.errorCode(rec))
}

func (s *GroupHandlerTestSuite) TestUpdateGroup_Success() {
	updated := &models.Group{ID: 5, Name: "Office"}
	s.mockService.EXPECT().Update(uint(5), s.userID, "Office").Return(updated, nil)

	c, rec := s.newContext(http.MethodPut, "/groups/5", `{"name":"Office"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.UpdateGroup(c))
	s.Equal(http.StatusOK, rec.Code)

	var response models.Group
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Office", response.Name)
}

func (s *GroupHandlerTestSuite) TestUpdateGroup_NameTooLong() {
	c, rec := s.newContext(http.MethodPut, "/groups/5", `{"name":"`+strings.Repeat("a", 33)+`"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.UpdateGroup(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *GroupHandlerTestSuite) TestUpdateGroup_WhitespaceOnlyName() {
	nameErr := fmt.Errorf("%w: %v", services.ErrGroupNameInvalid, models.ErrGroupNameEmpty)
	s.mockService.EXPECT().Update(uint(5), s.userID, "   ").Return(nil, nameErr)

	c, rec := s.newContext(http.MethodPut, "/groups/5", `{"name":"   "}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.UpdateGroup(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(string(apierrors.GroupNameInvalid), s.errorCode(rec))
}

func (s *GroupHandlerTestSuite) TestAssignAccounts_Success() {
	group := &models.Group{ID: 5, Name: "Work", AccountCount: 2}
	s.mockService.EXPECT().AssignAccounts(uint(5), s.userID, []uint{7, 8}).Return(group, nil)

	c, rec := s.newContext(http.MethodPost, "/groups/5/assign", `{"ids":[7,8]}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.AssignAccounts(c))
	s.Equal(http.StatusOK, rec.Code)

	var response models.Group
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(int64(2), response.AccountCount)
}

func (s *GroupHandlerTestSuite) TestAssignAccounts_EmptyIDs() {
	c, rec := s.newContext(http.MethodPost, "/groups/5/assign", `{"ids":[]}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.AssignAccounts(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *GroupHandlerTestSuite) TestGetGroupAccounts_Success() {
	accounts := []models.OtpAccount{
		{ID: 1, Service: "example.com", Account: "john@example.com"},
	}
	s.mockService.EXPECT().AccountsOf(uint(5), s.userID).Return(accounts, nil)

	c, rec := s.newContext(http.MethodGet, "/groups/5/accounts", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.GetGroupAccounts(c))
	s.Equal(http.StatusOK, rec.Code)

	var response []models.OtpAccount
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response, 1)
	s.Equal("example.com", response[0].Service)
}

func (s *GroupHandlerTestSuite) TestDeleteGroup_Success() {
	s.mockService.EXPECT().Delete(uint(5), s.userID).Return(nil)

	c, rec := s.newContext(http.MethodDelete, "/groups/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.DeleteGroup(c))
	s.Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.Bytes())
}

func (s *GroupHandlerTestSuite) TestDeleteGroup_NotFound() {
	s.mockService.EXPECT().Delete(uint(5), s.userID).Return(services.ErrGroupNotFound)

	c, rec := s.newContext(http.MethodDelete, "/groups/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.DeleteGroup(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *GroupHandlerTestSuite) TestInternalErrorsAreWrapped() {
	s.mockService.EXPECT().View(uint(5), s.userID).Return(nil, errors.New("database exploded"))

	c, rec := s.newContext(http.MethodGet, "/groups/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.GetGroup(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	// The internal detail never reaches the client
	s.NotContains(rec.Body.String(), "database exploded")
}
