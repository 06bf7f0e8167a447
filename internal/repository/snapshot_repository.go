package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/google/uuid"
)

// SnapshotRepository guarda la foto diaria del valor del portafolio para el
// historial de inversiones. Se conserva un snapshot por día con los valores
// máximo y mínimo observados.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveDailySnapshot registra el valor actual del portafolio. Si ya existe un
// snapshot para el día se actualizan los valores máximo y mínimo; si no,
// se crea uno nuevo.
func (r *SnapshotRepository) SaveDailySnapshot(userID string, totalValue, totalInvested, profit, profitPercentage float64) error {
	// No guardamos snapshots con valores inválidos
	if totalValue <= 0 || totalInvested <= 0 {
		log.Printf("No se guardó el snapshot: valores inválidos (totalValue=%f, totalInvested=%f)", totalValue, totalInvested)
		return nil
	}

	currentTime := time.Now()
	dayStart := time.Date(currentTime.Year(), currentTime.Month(), currentTime.Day(), 0, 0, 0, 0, currentTime.Location())
	nextDay := dayStart.AddDate(0, 0, 1)

	existingQuery := `
		SELECT id, max_value, min_value
		FROM investment_snapshots
		WHERE user_id = ? AND date >= ? AND date < ?
		LIMIT 1`

	var existingID string
	var maxValue, minValue float64
	err := r.db.QueryRow(existingQuery, userID, dayStart, nextDay).Scan(&existingID, &maxValue, &minValue)

	if err == sql.ErrNoRows {
		insertQuery := `
			INSERT INTO investment_snapshots (id, user_id, date, total_value, total_invested, profit, profit_percentage, max_value, min_value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := r.db.Exec(insertQuery,
			fmt.Sprintf("snapshot_%s", uuid.NewString()),
			userID,
			currentTime,
			totalValue,
			totalInvested,
			profit,
			profitPercentage,
			totalValue,
			totalValue,
		)
		return err
	}
	if err != nil {
		return err
	}

	newMax := maxValue
	newMin := minValue
	if totalValue > newMax {
		newMax = totalValue
	}
	if newMin == 0 || totalValue < newMin {
		newMin = totalValue
	}

	updateQuery := `
		UPDATE investment_snapshots
		SET total_value = ?, total_invested = ?, profit = ?, profit_percentage = ?, date = ?, max_value = ?, min_value = ?
		WHERE id = ?`

	_, err = r.db.Exec(updateQuery,
		totalValue,
		totalInvested,
		profit,
		profitPercentage,
		currentTime,
		newMax,
		newMin,
		existingID,
	)
	return err
}

// GetSnapshotsSince obtiene los snapshots del usuario desde una fecha,
// ordenados de más antiguo a más reciente.
func (r *SnapshotRepository) GetSnapshotsSince(userID string, startDate time.Time) ([]models.InvestmentSnapshot, error) {
	query := `
		SELECT id, user_id, date, total_value, total_invested, profit, profit_percentage, max_value, min_value, created_at
		FROM investment_snapshots
		WHERE user_id = ? AND date >= ?
		ORDER BY date ASC`

	rows, err := r.db.Query(query, userID, startDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.InvestmentSnapshot
	for rows.Next() {
		var s models.InvestmentSnapshot
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Date,
			&s.TotalValue,
			&s.TotalInvested,
			&s.Profit,
			&s.ProfitPercentage,
			&s.MaxValue,
			&s.MinValue,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// GetInvestmentHistory arma la serie diaria para los gráficos de línea desde
// una fecha de inicio. Con fecha cero devuelve el historial completo.
func (r *SnapshotRepository) GetInvestmentHistory(userID string, startDate time.Time) (models.InvestmentHistory, error) {
	snapshots, err := r.GetSnapshotsSince(userID, startDate)
	if err != nil {
		return models.InvestmentHistory{}, fmt.Errorf("error al obtener el historial de inversiones: %v", err)
	}

	history := models.InvestmentHistory{
		StartDate: startDate,
		History:   make([]models.DailyValue, len(snapshots)),
	}

	for i, snapshot := range snapshots {
		history.History[i] = models.DailyValue{
			Date:             snapshot.Date.Format("2006-01-02"),
			TotalValue:       snapshot.TotalValue,
			ChangePercentage: snapshot.ProfitPercentage,
		}
	}

	// Tendencia general: cambio porcentual entre el primer y el último snapshot
	if len(snapshots) > 1 {
		firstValue := snapshots[0].TotalValue
		lastValue := snapshots[len(snapshots)-1].TotalValue
		if firstValue > 0 {
			history.TrendPercentage = ((lastValue - firstValue) / firstValue) * 100
		}
	}

	return history, nil
}
