package repositories

import (
	"testing"

	"twofactor-vault/internal/database"
	"twofactor-vault/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestOtpAccountRepository(t *testing.T) {
	suite.Run(t, new(OtpAccountRepositorySuite))
}

type OtpAccountRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo OtpAccountRepositoryInterface
	user *models.User
}

func (s *OtpAccountRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewOtpAccountRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db)
}

func (s *OtpAccountRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *OtpAccountRepositorySuite) TestOtpAccountRepository_Create() {
	account := &models.OtpAccount{
		UserID:  s.user.ID,
		Service: "example.com",
		Account: "john@example.com",
		Secret:  "JBSWY3DPEHPK3PXP",
	}

	err := s.repo.Create(account)
	s.NoError(err)
	s.NotZero(account.ID)

	// Defaults are applied on create
	s.Equal(models.OtpTypeTotp, account.OtpType)
	s.Equal(6, account.Digits)
}

func (s *OtpAccountRepositorySuite) TestOtpAccountRepository_GetByID() {
	created := database.CreateTestOtpAccount(s.T(), s.db, s.user, nil)

	found, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal(created.ID, found.ID)

	_, err = s.repo.GetByID(99999)
	s.Equal(ErrOtpAccountNotFound, err)
}

func (s *OtpAccountRepositorySuite) TestOtpAccountRepository_Counts() {
	group := database.CreateTestGroup(s.T(), s.db, s.user, "Work")
	database.CreateTestOtpAccount(s.T(), s.db, s.user, &group.ID)
	database.CreateTestOtpAccount(s.T(), s.db, s.user, &group.ID)
	database.CreateTestOtpAccount(s.T(), s.db, s.user, nil)

	total, err := s.repo.CountByUserID(s.user.ID)
	s.NoError(err)
	s.Equal(int64(3), total)

	grouped, err := s.repo.CountByGroupID(group.ID)
	s.NoError(err)
	s.Equal(int64(2), grouped)
}

func (s *OtpAccountRepositorySuite) TestOtpAccountRepository_AssignToGroup() {
	group := database.CreateTestGroup(s.T(), s.db, s.user, "Work")
	a := database.CreateTestOtpAccount(s.T(), s.db, s.user, nil)
	b := database.CreateTestOtpAccount(s.T(), s.db, s.user, nil)

	moved, err := s.repo.AssignToGroup([]uint{a.ID, b.ID}, group.ID, s.user.ID)
	s.NoError(err)
	s.Equal(int64(2), moved)

	accounts, err := s.repo.GetByGroupID(group.ID)
	s.NoError(err)
	s.Len(accounts, 2)
}

func (s *OtpAccountRepositorySuite) TestOtpAccountRepository_AssignToGroup_MovesBetweenGroups() {
	oldGroup := database.CreateTestGroup(s.T(), s.db, s.user, "Old")
	newGroup := database.CreateTestGroup(s.T(), s.db, s.user, "New")
	account := database.CreateTestOtpAccount(s.T(), s.db, s.user, &oldGroup.ID)

	moved, err := s.repo.AssignToGroup([]uint{account.ID}, newGroup.ID, s.user.ID)
	s.NoError(err)
	s.Equal(int64(1), moved)

	// Membership is exclusive: the account left the old group
	oldCount, err := s.repo.CountByGroupID(oldGroup.ID)
	s.NoError(err)
	s.Equal(int64(0), oldCount)

	newCount, err := s.repo.CountByGroupID(newGroup.ID)
	s.NoError(err)
	s.Equal(int64(1), newCount)
}

func (s *OtpAccountRepositorySuite) TestOtpAccountRepository_AssignToGroup_SkipsForeignAccounts() {
	group := database.CreateTestGroup(s.T(), s.db, s.user, "Work")
	mine := database.CreateTestOtpAccount(s.T(), s.db, s.user, nil)

	other := database.CreateTestUser(s.T(), s.db)
	theirs := database.CreateTestOtpAccount(s.T(), s.db, other, nil)

	moved, err := s.repo.AssignToGroup([]uint{mine.ID, theirs.ID}, group.ID, s.user.ID)
	s.NoError(err)
	s.Equal(int64(1), moved)

	// The foreign account was left untouched
	untouched, err := s.repo.GetByID(theirs.ID)
	s.NoError(err)
	s.Nil(untouched.GroupID)
}

func (s *OtpAccountRepositorySuite) TestOtpAccountRepository_AssignToGroup_EmptyBatch() {
	group := database.CreateTestGroup(s.T(), s.db, s.user, "Work")

	moved, err := s.repo.AssignToGroup(nil, group.ID, s.user.ID)
	s.NoError(err)
	s.Equal(int64(0), moved)
}
