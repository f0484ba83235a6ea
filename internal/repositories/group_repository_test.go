package repositories

import (
	"testing"

	"twofactor-vault/internal/database"
	"twofactor-vault/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestGroupRepository(t *testing.T) {
	suite.Run(t, new(GroupRepositorySuite))
}

type GroupRepositorySuite struct {
	suite.Suite
	db          *database.DB
	repo        GroupRepositoryInterface
	accountRepo OtpAccountRepositoryInterface
	user        *models.User
}

func (s *GroupRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewGroupRepository(s.db.DB)
	s.accountRepo = NewOtpAccountRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db)
}

func (s *GroupRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *GroupRepositorySuite) TestGroupRepository_Create() {
	group := &models.Group{
		UserID: s.user.ID,
		Name:   "Work",
	}

	err := s.repo.Create(group)
	s.NoError(err)
	s.NotZero(group.ID)
	s.NotZero(group.CreatedAt)
}

func (s *GroupRepositorySuite) TestGroupRepository_GetByID() {
	created := database.CreateTestGroup(s.T(), s.db, s.user, "Work")

	found, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("Work", found.Name)

	_, err = s.repo.GetByID(99999)
	s.Equal(ErrGroupNotFound, err)
}

func (s *GroupRepositorySuite) TestGroupRepository_GetByID_SyntheticID() {
	// id 0 belongs to the virtual group of all accounts; it has no row
	_, err := s.repo.GetByID(0)
	s.Equal(ErrGroupNotFound, err)
}

func (s *GroupRepositorySuite) TestGroupRepository_GetByUserID_CreationOrder() {
	first := database.CreateTestGroup(s.T(), s.db, s.user, "Alpha")
	second := database.CreateTestGroup(s.T(), s.db, s.user, "Beta")
	third := database.CreateTestGroup(s.T(), s.db, s.user, "Gamma")

	groups, err := s.repo.GetByUserID(s.user.ID)
	s.NoError(err)
	s.Len(groups, 3)
	s.Equal(first.ID, groups[0].ID)
	s.Equal(second.ID, groups[1].ID)
	s.Equal(third.ID, groups[2].ID)
}

func (s *GroupRepositorySuite) TestGroupRepository_GetByUserID_ScopedToOwner() {
	database.CreateTestGroup(s.T(), s.db, s.user, "Mine")

	other := database.CreateTestUser(s.T(), s.db)
	database.CreateTestGroup(s.T(), s.db, other, "Theirs")

	groups, err := s.repo.GetByUserID(s.user.ID)
	s.NoError(err)
	s.Len(groups, 1)
	s.Equal("Mine", groups[0].Name)
}

func (s *GroupRepositorySuite) TestGroupRepository_ExistsByName() {
	group := database.CreateTestGroup(s.T(), s.db, s.user, "Work")

	taken, err := s.repo.ExistsByName(s.user.ID, "Work", 0)
	s.NoError(err)
	s.True(taken)

	taken, err = s.repo.ExistsByName(s.user.ID, "Personal", 0)
	s.NoError(err)
	s.False(taken)

	// Excluding the group itself lets a rename keep its own name
	taken, err = s.repo.ExistsByName(s.user.ID, "Work", group.ID)
	s.NoError(err)
	s.False(taken)

	// Name uniqueness is per user, not global
	other := database.CreateTestUser(s.T(), s.db)
	taken, err = s.repo.ExistsByName(other.ID, "Work", 0)
	s.NoError(err)
	s.False(taken)
}

func (s *GroupRepositorySuite) TestGroupRepository_Update() {
	group := database.CreateTestGroup(s.T(), s.db, s.user, "Work")

	group.Name = "Office"
	err := s.repo.Update(group)
	s.NoError(err)

	found, err := s.repo.GetByID(group.ID)
	s.NoError(err)
	s.Equal("Office", found.Name)
}

func (s *GroupRepositorySuite) TestGroupRepository_Delete_ClearsMembership() {
	group := database.CreateTestGroup(s.T(), s.db, s.user, "Work")
	account := database.CreateTestOtpAccount(s.T(), s.db, s.user, &group.ID)

	err := s.repo.Delete(group.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(group.ID)
	s.Equal(ErrGroupNotFound, err)

	// The account survives with its membership cleared
	kept, err := s.accountRepo.GetByID(account.ID)
	s.NoError(err)
	s.Nil(kept.GroupID)
}

func (s *GroupRepositorySuite) TestGroupRepository_Delete_NotFound() {
	err := s.repo.Delete(99999)
	s.Equal(ErrGroupNotFound, err)
}
