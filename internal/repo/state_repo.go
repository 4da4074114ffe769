package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
)

// model_state holds exactly one row under this id.
const stateRowID = 1

// StateRepo persists the model watermark record. Get and Put move the whole
// record at once; there is no partial update.
type StateRepo struct {
	db *db.DB
}

func NewStateRepo(d *db.DB) *StateRepo {
	return &StateRepo{db: d}
}

// Get returns the persisted state, or the zero state (version 0, never
// trained) when no row exists yet.
func (r *StateRepo) Get(ctx context.Context) (*model.ModelState, error) {
	where := map[string]interface{}{"id": stateRowID}
	sqlStr, args, err := builder.BuildSelect("model_state", where,
		[]string{"model_version", "last_trained_at"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)

	var state model.ModelState
	var lastTrained sql.NullInt64
	if err := row.Scan(&state.ModelVersion, &lastTrained); err != nil {
		if err == sql.ErrNoRows {
			return &model.ModelState{}, nil
		}
		return nil, err
	}
	if lastTrained.Valid {
		ts := lastTrained.Int64
		state.LastTrainedAt = &ts
	}
	return &state, nil
}

func (r *StateRepo) Put(ctx context.Context, state *model.ModelState) error {
	update := map[string]interface{}{
		"model_version": state.ModelVersion,
	}
	if state.LastTrainedAt != nil {
		update["last_trained_at"] = *state.LastTrainedAt
	}
	where := map[string]interface{}{"id": stateRowID}
	sqlStr, args, err := builder.BuildUpdate("model_state", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	data := update
	data["id"] = stateRowID
	sqlStr, args, err = builder.BuildInsert("model_state", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
