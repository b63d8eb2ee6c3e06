package department

import (
	"errors"
	"strings"

	departmenterrors "go-leave/internal/department/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_department_name" {
			return departmenterrors.ErrDepartmentNameTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_department_name") {
		return departmenterrors.ErrDepartmentNameTaken
	}

	return err
}
