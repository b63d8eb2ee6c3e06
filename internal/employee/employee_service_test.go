package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn           func(tx *sql.Tx) employee.Repository
	createFn           func(ctx context.Context, empl *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	findOptionsFn      func(ctx context.Context) ([]employee.Employee, error)
	findRoleByIDFn     func(ctx context.Context, id string) (employee.Role, error)
	departmentExistsFn func(ctx context.Context, departmentID string) (bool, error)
	updateFn           func(ctx context.Context, empl *employee.Employee) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	if f.findOptionsFn != nil {
		return f.findOptionsFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindRoleByID(ctx context.Context, id string) (employee.Role, error) {
	if f.findRoleByIDFn != nil {
		return f.findRoleByIDFn(ctx, id)
	}
	return "", gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	if f.departmentExistsFn != nil {
		return f.departmentExistsFn(ctx, departmentID)
	}
	return true, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type employeeServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	service   employee.Service
	repo      *fakeEmployeeRepository
	counter   *fakeCounterRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{next: 41}
	svc := employee.NewService(db, repo, counterRepo, rdb)

	return &employeeServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		redisMock: redisMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
	}
}

func expectEmployeeTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success generates employee number", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		var created *employee.Employee
		d.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			created = empl
			return nil
		}
		expectEmployeeTx(t, d.sqlMock, true)
		d.redisMock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := d.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Wanjiku Kamau",
			Email:    "wanjiku@example.go.ke",
			Role:     "staff",
			HireDate: "2024-02-01",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
		assert.Equal(t, "staff", resp.Role)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
		assert.NoError(t, d.redisMock.ExpectationsWereMet())
	})

	t.Run("success keeps explicit employee number", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		expectEmployeeTx(t, d.sqlMock, true)
		d.redisMock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := d.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:       "Otieno Odhiambo",
			Email:          "otieno@example.go.ke",
			Role:           "hod",
			EmployeeNumber: "EMP-900001",
			HireDate:       "2020-06-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-900001", resp.EmployeeNumber)
	})

	t.Run("negative unknown role", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		_, err := d.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "X",
			Email:    "x@example.go.ke",
			Role:     "director",
			HireDate: "2024-02-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
	})

	t.Run("negative unknown department", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		deptID := uuid.New().String()
		d.repo.departmentExistsFn = func(ctx context.Context, departmentID string) (bool, error) {
			return false, nil
		}
		expectEmployeeTx(t, d.sqlMock, false)

		_, err := d.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:     "X",
			Email:        "x@example.go.ke",
			Role:         "staff",
			DepartmentID: &deptID,
			HireDate:     "2024-02-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrUnknownDepartment)
	})

	t.Run("negative bad hire date", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		_, err := d.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "X",
			Email:    "x@example.go.ke",
			Role:     "staff",
			HireDate: "01-02-2024",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})
}

func TestEmployeeService_GetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		id := uuid.New().String()
		d.repo.findRoleByIDFn = func(ctx context.Context, gotID string) (employee.Role, error) {
			assert.Equal(t, id, gotID)
			return employee.RoleHOD, nil
		}

		role, err := d.service.GetRole(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, employee.RoleHOD, role)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		_, err := d.service.GetRole(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		_, err := d.service.GetRole(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("success cache miss populates redis", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		empls := []employee.Employee{
			{ID: uuid.New(), FullName: "A", EmployeeNumber: "EMP-000001", Role: employee.RoleStaff},
			{ID: uuid.New(), FullName: "B", EmployeeNumber: "EMP-000002", Role: employee.RoleHOD},
		}
		queried := 0
		d.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			queried++
			return empls, nil
		}

		d.redisMock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		d.redisMock.Regexp().ExpectSet(employee.EmployeeOptionsKey, `.*`, time.Hour).SetVal("OK")

		resp, err := d.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, 1, queried)
	})

	t.Run("success cache hit skips the database", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)
		defer d.db.Close()

		cached := []employee.EmployeeResponse{
			{ID: uuid.New().String(), FullName: "Cached", EmployeeNumber: "EMP-000009", Role: "staff"},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		d.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			t.Fatal("database must not be queried on a cache hit")
			return nil, nil
		}
		d.redisMock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(payload))

		resp, err := d.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})
}
