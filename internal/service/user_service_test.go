package service

import (
	"strings"
	"testing"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db))
}

func TestBulkUploadCSV(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	csvBody := strings.Join([]string{
		"username,email,password,full_name",
		"ada,ada@school.edu,pass1234,Ada L",
		"ben,,pass1234,",
		",missing@school.edu,pass1234,No Name",
		"ada,dup@school.edu,pass1234,Dup",
	}, "\n")

	result, err := svc.BulkUpload("users.csv", strings.NewReader(csvBody))
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Details, 4)

	assert.Equal(t, "created", result.Details[0].Status)
	assert.Equal(t, "created", result.Details[1].Status)
	assert.Equal(t, "failed", result.Details[2].Status)
	assert.Equal(t, "username and password are required", result.Details[2].Message)
	assert.Equal(t, "failed", result.Details[3].Status)
	assert.Equal(t, "Username or email already registered", result.Details[3].Message)

	// Rows before a failure stay committed.
	ben, err := repository.NewUserRepository(db).FindByUsername("ben")
	require.NoError(t, err)
	assert.Equal(t, "ben@example.com", ben.Email)
	assert.Equal(t, model.Student, ben.Role)
	assert.True(t, util.VerifyPassword(ben.HashedPassword, "pass1234"))
}

func TestBulkUploadHeaderFlexibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	csvBody := "Password,Username,Full Name\npass1234,zoe,Zoe Q\n"
	result, err := svc.BulkUpload("roster.CSV", strings.NewReader(csvBody))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)

	zoe, err := repository.NewUserRepository(db).FindByUsername("zoe")
	require.NoError(t, err)
	assert.Equal(t, "Zoe Q", zoe.FullName)
	assert.Equal(t, "zoe@example.com", zoe.Email)
}

func TestBulkUploadExcel(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"username", "email", "password", "full_name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"ada", "ada@school.edu", "pass1234", "Ada L"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"ben", "", "pass1234", ""}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := svc.BulkUpload("users.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
}

func TestBulkUploadUnsupportedExtension(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	_, err := svc.BulkUpload("users.txt", strings.NewReader("whatever"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestUpdateUserPatch(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)
	user := seedUser(t, db, "ada", model.Student)

	updated, err := svc.UpdateUser(user.ID, model.UserPatch{
		FullName: strPtr("Ada Lovelace"),
		Password: strPtr("newpass123"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", updated.FullName)
	assert.Equal(t, user.Email, updated.Email)
	assert.True(t, util.VerifyPassword(updated.HashedPassword, "newpass123"))

	// An empty password in the patch leaves the hash untouched.
	again, err := svc.UpdateUser(user.ID, model.UserPatch{Password: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, updated.HashedPassword, again.HashedPassword)

	deactivated, err := svc.UpdateUser(user.ID, model.UserPatch{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	_, err = svc.UpdateUser(9999, model.UserPatch{})
	require.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestDeleteUserFreesUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)
	user := seedUser(t, db, "ada", model.Student)

	require.NoError(t, svc.DeleteUser(user.ID))
	_, err := svc.GetUserByID(user.ID)
	require.ErrorIs(t, err, util.ErrUserNotFound)

	// The row is gone outright, so the same username can register again.
	seedUser(t, db, "ada", model.Student)

	require.ErrorIs(t, svc.DeleteUser(9999), util.ErrUserNotFound)
}

func TestGetUsersPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)
	seedUser(t, db, "ada", model.Student)
	ben := seedUser(t, db, "ben", model.Student)
	carol := seedUser(t, db, "carol", model.Student)

	page, err := svc.GetUsers(1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ben.ID, page[0].ID)
	assert.Equal(t, carol.ID, page[1].ID)
}
