package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/store"
)

// SettingsRepository implementa store.Persister sobre SQLite. El subconjunto
// persistido {settings, user} se guarda como un documento JSON por usuario:
// una sola columna auditable en lugar de una tabla por grupo de preferencias.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// LoadPersisted lee el estado persistido del usuario. El segundo valor
// indica si existía algo guardado.
func (r *SettingsRepository) LoadPersisted(userID string) (store.PersistedState, bool, error) {
	var data string
	err := r.db.QueryRow(
		`SELECT data FROM user_settings WHERE user_id = ?`,
		userID,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return store.PersistedState{}, false, nil
	}
	if err != nil {
		return store.PersistedState{}, false, err
	}

	var state store.PersistedState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return store.PersistedState{}, false, err
	}
	return state, true, nil
}

// SavePersisted escribe el estado persistido del usuario (write-through en
// cada mutación). Entrega al menos una vez: la última escritura gana.
func (r *SettingsRepository) SavePersisted(userID string, state store.PersistedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_settings (user_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	_, err = r.db.Exec(query, userID, string(data), time.Now())
	return err
}
