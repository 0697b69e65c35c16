package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

// Store implements store.Store on top of Postgres or SQLite. Queries are
// written with ? placeholders and rebound for the connected driver.
type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func (s *Store) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.db.Rebind(query), args...)
}

// execOne runs a write that must touch exactly one row
func (s *Store) execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ==================== SHIFTS ====================

const shiftColumns = `id, user_id, start_time, end_time, status, label, establishment_id, daily_rate,
	earnings_total, expenses_total, profit_total, created_at`

func (s *Store) CreateShift(ctx context.Context, sh *models.Shift) error {
	_, err := s.exec(ctx, `
		INSERT INTO shifts (`+shiftColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.UserID, sh.StartTime, sh.EndTime, sh.Status, sh.Label, sh.EstablishmentID, sh.DailyRate,
		sh.EarningsTotal, sh.ExpensesTotal, sh.ProfitTotal, sh.CreatedAt,
	)
	if err != nil {
		return insertErr("shift", err)
	}
	return nil
}

func (s *Store) OpenShift(ctx context.Context, userID string) (*models.Shift, error) {
	var sh models.Shift
	err := s.get(ctx, &sh, `SELECT `+shiftColumns+` FROM shifts WHERE user_id = ? AND status = ? LIMIT 1`,
		userID, models.ShiftStatusOpen)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Store) GetShift(ctx context.Context, userID, id string) (*models.Shift, error) {
	var sh models.Shift
	if err := s.get(ctx, &sh, `SELECT `+shiftColumns+` FROM shifts WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Store) ListShifts(ctx context.Context, userID string) ([]models.Shift, error) {
	shifts := []models.Shift{}
	err := s.selectAll(ctx, &shifts, `SELECT `+shiftColumns+` FROM shifts WHERE user_id = ? ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

// CloseShift only matches a row that is still open, so a shift is closed at most once
func (s *Store) CloseShift(ctx context.Context, sh *models.Shift) error {
	return s.execOne(ctx, `
		UPDATE shifts
		SET status = ?, end_time = ?, earnings_total = ?, expenses_total = ?, profit_total = ?
		WHERE id = ? AND user_id = ? AND status = ?`,
		sh.Status, sh.EndTime, sh.EarningsTotal, sh.ExpensesTotal, sh.ProfitTotal,
		sh.ID, sh.UserID, models.ShiftStatusOpen,
	)
}

// ==================== EARNINGS / EXPENSES ====================

const earningColumns = `id, user_id, shift_id, date, amount, work_type, neighborhood, payment_method, note, created_at`

func (s *Store) CreateEarning(ctx context.Context, e *models.Earning) error {
	_, err := s.exec(ctx, `
		INSERT INTO earnings (`+earningColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.ShiftID, e.Date, e.Amount, e.WorkType, e.Neighborhood, e.PaymentMethod, e.Note, e.CreatedAt,
	)
	if err != nil {
		return insertErr("earning", err)
	}
	return nil
}

func (s *Store) DeleteEarning(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, `DELETE FROM earnings WHERE user_id = ? AND id = ?`, userID, id)
}

func (s *Store) ListEarnings(ctx context.Context, userID string) ([]models.Earning, error) {
	earnings := []models.Earning{}
	err := s.selectAll(ctx, &earnings, `SELECT `+earningColumns+` FROM earnings WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list earnings: %w", err)
	}
	return earnings, nil
}

func (s *Store) ListShiftEarnings(ctx context.Context, userID, shiftID string) ([]models.Earning, error) {
	earnings := []models.Earning{}
	err := s.selectAll(ctx, &earnings, `SELECT `+earningColumns+` FROM earnings WHERE user_id = ? AND shift_id = ? ORDER BY seq ASC`,
		userID, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift earnings: %w", err)
	}
	return earnings, nil
}

const expenseColumns = `id, user_id, shift_id, date, amount, category, description, created_at`

func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	_, err := s.exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.ShiftID, e.Date, e.Amount, e.Category, e.Description, e.CreatedAt,
	)
	if err != nil {
		return insertErr("expense", err)
	}
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, `DELETE FROM expenses WHERE user_id = ? AND id = ?`, userID, id)
}

func (s *Store) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := s.selectAll(ctx, &expenses, `SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *Store) ListShiftExpenses(ctx context.Context, userID, shiftID string) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := s.selectAll(ctx, &expenses, `SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? AND shift_id = ? ORDER BY seq ASC`,
		userID, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift expenses: %w", err)
	}
	return expenses, nil
}

// ==================== REFERENCE DATA ====================

func (s *Store) CreateNeighborhood(ctx context.Context, n *models.Neighborhood) error {
	_, err := s.exec(ctx, `INSERT INTO neighborhoods (id, user_id, name, fee, created_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Name, n.Fee, n.CreatedAt)
	if err != nil {
		return insertErr("neighborhood", err)
	}
	return nil
}

func (s *Store) UpdateNeighborhood(ctx context.Context, n *models.Neighborhood) error {
	return s.execOne(ctx, `UPDATE neighborhoods SET name = ?, fee = ? WHERE user_id = ? AND id = ?`,
		n.Name, n.Fee, n.UserID, n.ID)
}

func (s *Store) DeleteNeighborhood(ctx context.Context, userID, id string) error {
	_, err := s.exec(ctx, `DELETE FROM neighborhoods WHERE user_id = ? AND id = ?`, userID, id)
	return err
}

func (s *Store) GetNeighborhood(ctx context.Context, userID, id string) (*models.Neighborhood, error) {
	var n models.Neighborhood
	if err := s.get(ctx, &n, `SELECT id, user_id, name, fee, created_at FROM neighborhoods WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) ListNeighborhoods(ctx context.Context, userID string) ([]models.Neighborhood, error) {
	list := []models.Neighborhood{}
	err := s.selectAll(ctx, &list, `SELECT id, user_id, name, fee, created_at FROM neighborhoods WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}
	// LOWER differs between dialects for accented names
	models.SortNeighborhoods(list)
	return list, nil
}

func (s *Store) CreateEstablishment(ctx context.Context, e *models.Establishment) error {
	_, err := s.exec(ctx, `INSERT INTO establishments (id, user_id, name, daily_rate, active, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Name, e.DailyRate, e.Active, e.CreatedAt)
	if err != nil {
		return insertErr("establishment", err)
	}
	return nil
}

func (s *Store) UpdateEstablishment(ctx context.Context, e *models.Establishment) error {
	return s.execOne(ctx, `UPDATE establishments SET name = ?, daily_rate = ?, active = ? WHERE user_id = ? AND id = ?`,
		e.Name, e.DailyRate, e.Active, e.UserID, e.ID)
}

func (s *Store) DeleteEstablishment(ctx context.Context, userID, id string) error {
	_, err := s.exec(ctx, `DELETE FROM establishments WHERE user_id = ? AND id = ?`, userID, id)
	return err
}

func (s *Store) GetEstablishment(ctx context.Context, userID, id string) (*models.Establishment, error) {
	var e models.Establishment
	err := s.get(ctx, &e, `SELECT id, user_id, name, daily_rate, active, created_at FROM establishments WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListEstablishments(ctx context.Context, userID string) ([]models.Establishment, error) {
	list := []models.Establishment{}
	err := s.selectAll(ctx, &list, `SELECT id, user_id, name, daily_rate, active, created_at FROM establishments WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list establishments: %w", err)
	}
	// LOWER differs between dialects for accented names
	models.SortEstablishments(list)
	return list, nil
}

// ==================== DELIVERIES ====================

const deliveryColumns = `id, user_id, shift_id, establishment_id, neighborhood_id, address, neighborhood_name,
	fee, reference, note, created_at`

func (s *Store) CreateDelivery(ctx context.Context, d *models.Delivery) error {
	_, err := s.exec(ctx, `
		INSERT INTO deliveries (`+deliveryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.ShiftID, d.EstablishmentID, d.NeighborhoodID, d.Address, d.NeighborhoodName,
		d.Fee, d.Reference, d.Note, d.CreatedAt,
	)
	if err != nil {
		return insertErr("delivery", err)
	}
	return nil
}

func (s *Store) DeleteDelivery(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, `DELETE FROM deliveries WHERE user_id = ? AND id = ?`, userID, id)
}

func (s *Store) ListDeliveries(ctx context.Context, userID string) ([]models.Delivery, error) {
	list := []models.Delivery{}
	err := s.selectAll(ctx, &list, `SELECT `+deliveryColumns+` FROM deliveries WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return list, nil
}

func (s *Store) ListShiftDeliveries(ctx context.Context, userID, shiftID string) ([]models.Delivery, error) {
	list := []models.Delivery{}
	err := s.selectAll(ctx, &list, `SELECT `+deliveryColumns+` FROM deliveries WHERE user_id = ? AND shift_id = ? ORDER BY created_at ASC`,
		userID, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift deliveries: %w", err)
	}
	return list, nil
}

// ==================== PROFILES / DEVICES ====================

const profileColumns = `user_id, name, email, whatsapp, city, monthly_goal, created_at, updated_at`

func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.get(ctx, &p, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *models.Profile) error {
	_, err := s.exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Email, p.Whatsapp, p.City, p.MonthlyGoal, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return insertErr("profile", err)
	}
	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, p *models.Profile) error {
	return s.execOne(ctx, `
		UPDATE profiles SET name = ?, whatsapp = ?, city = ?, monthly_goal = ?, updated_at = ?
		WHERE user_id = ?`,
		p.Name, p.Whatsapp, p.City, p.MonthlyGoal, p.UpdatedAt, p.UserID,
	)
}

// SaveDeviceToken upserts by token, moving it to the caller if another user held it
func (s *Store) SaveDeviceToken(ctx context.Context, t *models.DeviceToken) error {
	_, err := s.exec(ctx, `
		INSERT INTO fcm_tokens (id, user_id, token, device_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (token) DO UPDATE SET
			user_id = excluded.user_id,
			device_type = excluded.device_type,
			updated_at = excluded.updated_at`,
		t.ID, t.UserID, t.Token, t.DeviceType, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}
	return nil
}

func (s *Store) ListDeviceTokens(ctx context.Context, userID string) ([]models.DeviceToken, error) {
	tokens := []models.DeviceToken{}
	err := s.selectAll(ctx, &tokens, `SELECT id, user_id, token, device_type, created_at, updated_at FROM fcm_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	return tokens, nil
}
