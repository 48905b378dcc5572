package deposittypes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moniclaundry/deposit-service/internal/repos/deposittypes"
)

var _ deposittypes.DepositTypes = (*depositTypesRepo)(nil)

type depositTypesRepo struct{ db *sql.DB }

func New(db *sql.DB) *depositTypesRepo {
	return &depositTypesRepo{db: db}
}

const typeColumns = `id, branch_id, name, purchase_price, deposit_value, COALESCE(description, ''), is_active`

func scanType(row interface{ Scan(...any) error }) (*deposittypes.DepositType, error) {
	var dt deposittypes.DepositType

	err := row.Scan(
		&dt.ID, &dt.BranchID, &dt.Name,
		&dt.PurchasePrice, &dt.DepositValue,
		&dt.Description, &dt.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &dt, nil
}

func (r *depositTypesRepo) Get(tx *sql.Tx, typeID uint64) (*deposittypes.DepositType, error) {
	dt, err := scanType(tx.QueryRow(`
		SELECT `+typeColumns+`
		FROM deposit_types
		WHERE id = $1
	`, typeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, deposittypes.ErrDepositTypeNotFound
		}

		return nil, fmt.Errorf("get deposit type: %w", err)
	}

	return dt, nil
}

func (r *depositTypesRepo) GetByID(ctx context.Context, typeID uint64) (*deposittypes.DepositType, error) {
	dt, err := scanType(r.db.QueryRowContext(ctx, `
		SELECT `+typeColumns+`
		FROM deposit_types
		WHERE id = $1
	`, typeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, deposittypes.ErrDepositTypeNotFound
		}

		return nil, fmt.Errorf("get deposit type: %w", err)
	}

	return dt, nil
}

func (r *depositTypesRepo) ListActive(ctx context.Context, branchID uint64) ([]deposittypes.DepositType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+typeColumns+`
		FROM deposit_types
		WHERE branch_id = $1
		  AND is_active
		ORDER BY created_at DESC
	`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list deposit types: %w", err)
	}
	defer rows.Close()

	var out []deposittypes.DepositType

	for rows.Next() {
		dt, err := scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit type: %w", err)
		}

		out = append(out, *dt)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate deposit types: %w", err)
	}

	return out, nil
}

func (r *depositTypesRepo) Create(ctx context.Context, nt deposittypes.NewDepositType) (*deposittypes.DepositType, error) {
	dt, err := scanType(r.db.QueryRowContext(ctx, `
		INSERT INTO deposit_types (branch_id, name, purchase_price, deposit_value, description)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING `+typeColumns+`
	`, nt.BranchID, nt.Name, nt.PurchasePrice, nt.DepositValue, nt.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, deposittypes.ErrDuplicateDepositType
		}

		return nil, fmt.Errorf("create deposit type: %w", err)
	}

	return dt, nil
}

func (r *depositTypesRepo) Update(ctx context.Context, in deposittypes.DepositType) (*deposittypes.DepositType, error) {
	dt, err := scanType(r.db.QueryRowContext(ctx, `
		UPDATE deposit_types
		SET name = $2,
		    purchase_price = $3,
		    deposit_value = $4,
		    description = NULLIF($5, '')
		WHERE id = $1
		RETURNING `+typeColumns+`
	`, in.ID, in.Name, in.PurchasePrice, in.DepositValue, in.Description))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, deposittypes.ErrDepositTypeNotFound
		}
		if isUniqueViolation(err) {
			return nil, deposittypes.ErrDuplicateDepositType
		}

		return nil, fmt.Errorf("update deposit type: %w", err)
	}

	return dt, nil
}

// Deactivate soft-deletes: the type disappears from purchase listings but
// stays resolvable for historical transaction display.
func (r *depositTypesRepo) Deactivate(ctx context.Context, typeID uint64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deposit_types
		SET is_active = FALSE
		WHERE id = $1
	`, typeID)
	if err != nil {
		return fmt.Errorf("deactivate deposit type: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return deposittypes.ErrDepositTypeNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
