package utils

import "time"

// StartOfDay normaliza um timestamp para o início do dia (00:00:00).
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowBucket calcula o início e o fim da janela de tamanho fixo que
// contém o instante t. Janelas são alinhadas ao relógio (minutos truncados),
// então chamadas concorrentes no mesmo minuto caem no mesmo bucket.
func WindowBucket(t time.Time, windowMinutes int) (time.Time, time.Time) {
	window := time.Duration(windowMinutes) * time.Minute
	start := t.UTC().Truncate(window)
	return start, start.Add(window)
}

// GenerateDateRange gera as datas "YYYY-MM-DD" no intervalo from..to
// (inclusivo), para preencher dias sem atividade nos relatórios.
func GenerateDateRange(from, to time.Time) []string {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return []string{}
	}

	from = StartOfDay(from)
	to = StartOfDay(to)

	days := int(to.Sub(from).Hours()/24) + 1
	result := make([]string, days)
	current := from

	for i := 0; i < days; i++ {
		result[i] = current.Format("2006-01-02")
		current = current.AddDate(0, 0, 1)
	}

	return result
}
