package handlers

import (
	stderrors "errors"
	"net/http"

	"twofactor-vault/internal/dto"
	"twofactor-vault/internal/errors"
	"twofactor-vault/internal/services"

	"github.com/labstack/echo/v4"
)

// GroupHandler handles group-related HTTP requests
type GroupHandler struct {
	groupService services.GroupServiceInterface
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService services.GroupServiceInterface) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// sendGroupError maps group service errors to API error responses.
// A group that exists but belongs to another user is reported exactly
// like a missing one, so the API never confirms foreign group ids.
// The service may wrap its sentinels with extra context, so matching
// goes through errors.Is.
func sendGroupError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrGroupNotFound), stderrors.Is(err, services.ErrGroupNotOwned):
		return SendError(c, errors.GroupNotFound)
	case stderrors.Is(err, services.ErrGroupNameTaken):
		return SendError(c, errors.GroupNameTaken)
	case stderrors.Is(err, services.ErrGroupNameInvalid):
		return SendError(c, errors.GroupNameInvalid)
	default:
		return SendSystemError(c, err)
	}
}

// ListGroups lists the authenticated user's groups
// @Summary List groups
// @Description Retrieve all groups of the authenticated user, preceded by the virtual group of all accounts
// @Tags Groups
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Group "Groups with account counts"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groups, err := h.groupService.List(userID, getLocale(c))
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, groups)
}

// CreateGroup creates a new group
// @Summary Create group
// @Description Create a new group owned by the authenticated user
// @Tags Groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Group name"
// @Success 201 {object} models.Group "Created group"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 422 {object} errors.ErrorResponse "GROUP_002 - Name already taken or GROUP_004 - Invalid name"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	group, err := h.groupService.Create(userID, req.Name)
	if err != nil {
		return sendGroupError(c, err)
	}

	return c.JSON(http.StatusCreated, group)
}

// GetGroup retrieves a single group
// @Summary Get group
// @Description Retrieve one of the authenticated user's groups by id
// @Tags Groups
// @Security BearerAuth
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} models.Group "Group"
// @Failure 400 {object} errors.ErrorResponse "GROUP_003 - Invalid group ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "GROUP_001 - Group not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groupID, err := getGroupIDParam(c)
	if err != nil {
		return SendError(c, errors.GroupInvalidID)
	}

	group, err := h.groupService.View(groupID, userID)
	if err != nil {
		return sendGroupError(c, err)
	}

	return c.JSON(http.StatusOK, group)
}

// UpdateGroup renames a group
// @Summary Rename group
// @Description Rename one of the authenticated user's groups
// @Tags Groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body dto.UpdateGroupRequest true "New name"
// @Success 200 {object} models.Group "Updated group"
// @Failure 400 {object} errors.ErrorResponse "GROUP_003 - Invalid group ID or VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "GROUP_001 - Group not found"
// @Failure 422 {object} errors.ErrorResponse "GROUP_002 - Name already taken or GROUP_004 - Invalid name"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /groups/{id} [put]
func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groupID, err := getGroupIDParam(c)
	if err != nil {
		return SendError(c, errors.GroupInvalidID)
	}

	var req dto.UpdateGroupRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	group, err := h.groupService.Update(groupID, userID, req.Name)
	if err != nil {
		return sendGroupError(c, err)
	}

	return c.JSON(http.StatusOK, group)
}

// AssignAccounts moves accounts into a group
// @Summary Assign accounts to group
// @Description Move the given accounts into the group. Accounts leave their previous group; ids the user does not own are ignored.
// @Tags Groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body dto.AssignAccountsRequest true "Account IDs"
// @Success 200 {object} models.Group "Target group with refreshed account count"
// @Failure 400 {object} errors.ErrorResponse "GROUP_003 - Invalid group ID or VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "GROUP_001 - Group not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /groups/{id}/assign [post]
func (h *GroupHandler) AssignAccounts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groupID, err := getGroupIDParam(c)
	if err != nil {
		return SendError(c, errors.GroupInvalidID)
	}

	var req dto.AssignAccountsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	group, err := h.groupService.AssignAccounts(groupID, userID, req.IDs)
	if err != nil {
		return sendGroupError(c, err)
	}

	return c.JSON(http.StatusOK, group)
}

// GetGroupAccounts lists the accounts of a group
// @Summary Get group accounts
// @Description Retrieve the accounts currently assigned to the group
// @Tags Groups
// @Security BearerAuth
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} models.OtpAccount "Accounts"
// @Failure 400 {object} errors.ErrorResponse "GROUP_003 - Invalid group ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "GROUP_001 - Group not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /groups/{id}/accounts [get]
func (h *GroupHandler) GetGroupAccounts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groupID, err := getGroupIDParam(c)
	if err != nil {
		return SendError(c, errors.GroupInvalidID)
	}

	accounts, err := h.groupService.AccountsOf(groupID, userID)
	if err != nil {
		return sendGroupError(c, err)
	}

	return c.JSON(http.StatusOK, accounts)
}

// DeleteGroup deletes a group
// @Summary Delete group
// @Description Delete one of the authenticated user's groups. Accounts in the group are kept and become ungrouped.
// @Tags Groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 204 "Group deleted"
// @Failure 400 {object} errors.ErrorResponse "GROUP_003 - Invalid group ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "GROUP_001 - Group not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groupID, err := getGroupIDParam(c)
	if err != nil {
		return SendError(c, errors.GroupInvalidID)
	}

	if err := h.groupService.Delete(groupID, userID); err != nil {
		return sendGroupError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
