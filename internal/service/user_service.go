package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

func (s *UserService) GetUsers(skip, limit int) ([]model.UserPublic, error) {
	users, err := s.UserRepo.List(skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.UserPublic, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the non-nil fields of the patch. A new password is
// hashed before it is stored.
func (s *UserService) UpdateUser(id uint, patch model.UserPatch) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := util.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(id uint) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	return s.UserRepo.Delete(id)
}

// bulkUserRow is one line of a bulk upload sheet. Only username and
// password are mandatory; email is derived from the username when absent.
type bulkUserRow struct {
	Username string `validate:"required"`
	Email    string
	Password string `validate:"required"`
	FullName string
}

// BulkUpload imports users from a CSV or Excel sheet. Rows are committed
// one at a time so a bad row never rolls back the ones before it.
func (s *UserService) BulkUpload(filename string, file io.Reader) (*model.BulkUploadResult, error) {
	rows, err := parseBulkUserRows(filename, file)
	if err != nil {
		return nil, err
	}

	result := &model.BulkUploadResult{Details: []model.BulkUserDetail{}}
	for _, row := range rows {
		result.TotalProcessed++
		detail := model.BulkUserDetail{Username: row.Username}

		if err := validator.New().Struct(row); err != nil {
			detail.Status = "failed"
			detail.Message = "username and password are required"
			result.Details = append(result.Details, detail)
			continue
		}

		if row.Email == "" {
			row.Email = row.Username + "@example.com"
		}

		exists, err := s.UserRepo.ExistsByUsernameOrEmail(row.Username, row.Email)
		if err != nil {
			detail.Status = "failed"
			detail.Message = err.Error()
			result.Details = append(result.Details, detail)
			continue
		}
		if exists {
			detail.Status = "failed"
			detail.Message = "Username or email already registered"
			result.Details = append(result.Details, detail)
			continue
		}

		hashed, err := util.HashPassword(row.Password)
		if err != nil {
			detail.Status = "failed"
			detail.Message = err.Error()
			result.Details = append(result.Details, detail)
			continue
		}

		user := &model.User{
			Username:       row.Username,
			Email:          row.Email,
			HashedPassword: hashed,
			FullName:       row.FullName,
			Role:           model.Student,
			IsActive:       true,
		}
		if err := s.UserRepo.Create(user); err != nil {
			detail.Status = "failed"
			detail.Message = err.Error()
			result.Details = append(result.Details, detail)
			continue
		}

		result.Successful++
		detail.Status = "created"
		result.Details = append(result.Details, detail)
	}
	result.Failed = result.TotalProcessed - result.Successful
	return result, nil
}

func parseBulkUserRows(filename string, file io.Reader) ([]bulkUserRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseBulkCSV(file)
	case ".xlsx", ".xls":
		return parseBulkExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename))
	}
}

func parseBulkCSV(file io.Reader) ([]bulkUserRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	cols := headerIndex(header)

	var rows []bulkUserRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read data row: %w", err)
		}
		rows = append(rows, rowFromRecord(record, cols))
	}
	return rows, nil
}

func parseBulkExcel(file io.Reader) ([]bulkUserRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	cols := headerIndex(records[0])
	rows := make([]bulkUserRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(record, cols))
	}
	return rows, nil
}

// headerIndex maps normalized column names to their positions, so sheets
// may order columns freely and use "Full Name" or "full_name" alike.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		cols[key] = i
	}
	return cols
}

func rowFromRecord(record []string, cols map[string]int) bulkUserRow {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return bulkUserRow{
		Username: cell("username"),
		Email:    cell("email"),
		Password: cell("password"),
		FullName: cell("full_name"),
	}
}

// ValidateBulkFile rejects anything that is not a spreadsheet before the
// body is read.
func ValidateBulkFile(fh *multipart.FileHeader) error {
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".csv", ".xlsx", ".xls":
		return nil
	default:
		return util.ErrInvalidFileType
	}
}
