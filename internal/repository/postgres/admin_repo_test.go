package postgres

import (
	"context"
	"database/sql"
	"testing"

	"photobooth/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAdminRepository_GetIDByEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		mock       func(mock sqlmock.Sqlmock)
		wantID     int64
		wantErr    bool
		isNotFound bool
	}{
		{
			name:  "found, email normalized",
			email: " Organizer@Example.com",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM admins WHERE email = \$1`).
					WithArgs("organizer@example.com").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))
			},
			wantID: 4,
		},
		{
			name:  "not an admin",
			email: "visitor@example.com",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM admins`).
					WithArgs("visitor@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name:  "db error",
			email: "a@b.c",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM admins`).
					WithArgs("a@b.c").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAdminRepository(db)
			id, err := repo.GetIDByEmail(ctx, tt.email)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.isNotFound, err == domain.ErrNotFound)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, id)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS admins`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, CreateSchema(context.Background(), db))

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS admins`).WillReturnError(sql.ErrConnDone)
	require.Error(t, CreateSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
