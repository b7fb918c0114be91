package schedule

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jeysiell/SinalTech/internal/models"
)

// LoadSeedFile reads a YAML seed schedule, used when the remote store has
// never been reachable. Format mirrors the store's JSON: period -> list.
func LoadSeedFile(path string) (models.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s models.Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}

	log.Printf("🌱 Seed schedule loaded from %s (%d periods)", path, len(s))
	return s, nil
}

// DefaultSchedule is the built-in fallback grid: the standard school day
// the system shipped with. Only used until the store answers.
func DefaultSchedule() models.Schedule {
	return models.Schedule{
		models.PeriodMorning: {
			{Time: "07:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
			{Time: "09:10", Name: "Intervalo", Music: "musica1.mp3", Duration: 8},
			{Time: "09:30", Name: "Fim do Intervalo", Music: "sino.mp3", Duration: 5},
			{Time: "12:00", Name: "Saída", Music: "musica2.mp3", Duration: 8},
		},
		models.PeriodAfternoon: {
			{Time: "13:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
			{Time: "15:10", Name: "Intervalo", Music: "musica3.mp3", Duration: 8},
			{Time: "15:30", Name: "Fim do Intervalo", Music: "sino.mp3", Duration: 5},
			{Time: "18:00", Name: "Saída", Music: "musica4.mp3", Duration: 8},
		},
		models.PeriodAfternoonFriday: {
			{Time: "17:30", Name: "Saída Especial", Music: "musica2.mp3", Duration: 8},
		},
	}
}
