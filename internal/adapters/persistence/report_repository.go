package persistence

import (
	"log"

	"gorm.io/gorm"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// GormReportSink persists combat and espionage reports as they are
// emitted and serves them back for the report feed. Record calls come
// from mission resolution and must not fail the tick, so write errors
// are logged and swallowed.
type GormReportSink struct {
	db *gorm.DB
}

// NewGormReportSink creates a new GORM report sink
func NewGormReportSink(db *gorm.DB) *GormReportSink {
	return &GormReportSink{db: db}
}

func (s *GormReportSink) RecordCombat(report *fleet.CombatReport) {
	attackerLosses, err := countsToJSON(report.AttackerLosses)
	if err != nil {
		log.Printf("report sink: %v", err)
		return
	}
	defenderLosses, err := countsToJSON(report.DefenderLosses)
	if err != nil {
		log.Printf("report sink: %v", err)
		return
	}

	model := &CombatReportModel{
		ID:             report.ID,
		MissionID:      report.MissionID.String(),
		Galaxy:         report.Coordinates.Galaxy,
		System:         report.Coordinates.System,
		Position:       report.Coordinates.Position,
		Timestamp:      report.Timestamp,
		Outcome:        string(report.Outcome),
		AttackerLosses: attackerLosses,
		DefenderLosses: defenderLosses,
		DebrisMetal:    report.Debris.Metal,
		DebrisCrystal:  report.Debris.Crystal,
		PlunderMetal:   report.Plunder.Metal,
		PlunderCrystal: report.Plunder.Crystal,
		PlunderDeut:    report.Plunder.Deuterium,
	}
	if err := s.db.Create(model).Error; err != nil {
		log.Printf("report sink: failed to save combat report: %v", err)
	}
}

func (s *GormReportSink) RecordEspionage(report *fleet.EspionageReport) {
	ships, err := countsToJSON(report.Ships)
	if err != nil {
		log.Printf("report sink: %v", err)
		return
	}
	defenses, err := countsToJSON(report.Defenses)
	if err != nil {
		log.Printf("report sink: %v", err)
		return
	}

	model := &EspionageReportModel{
		ID:        report.ID,
		MissionID: report.MissionID.String(),
		Galaxy:    report.Coordinates.Galaxy,
		System:    report.Coordinates.System,
		Position:  report.Coordinates.Position,
		Timestamp: report.Timestamp,
		Metal:     report.Resources.Metal,
		Crystal:   report.Resources.Crystal,
		Deuterium: report.Resources.Deuterium,
		Ships:     ships,
		Defenses:  defenses,
	}
	if err := s.db.Create(model).Error; err != nil {
		log.Printf("report sink: failed to save espionage report: %v", err)
	}
}

// CombatReports returns all persisted combat reports, oldest first
func (s *GormReportSink) CombatReports() []*fleet.CombatReport {
	var models []CombatReportModel
	if err := s.db.Order("timestamp asc").Find(&models).Error; err != nil {
		log.Printf("report sink: failed to load combat reports: %v", err)
		return nil
	}

	reports := make([]*fleet.CombatReport, 0, len(models))
	for i := range models {
		r, err := modelToCombatReport(&models[i])
		if err != nil {
			log.Printf("report sink: combat report %s: %v", models[i].ID, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports
}

// EspionageReports returns all persisted espionage reports, oldest first
func (s *GormReportSink) EspionageReports() []*fleet.EspionageReport {
	var models []EspionageReportModel
	if err := s.db.Order("timestamp asc").Find(&models).Error; err != nil {
		log.Printf("report sink: failed to load espionage reports: %v", err)
		return nil
	}

	reports := make([]*fleet.EspionageReport, 0, len(models))
	for i := range models {
		r, err := modelToEspionageReport(&models[i])
		if err != nil {
			log.Printf("report sink: espionage report %s: %v", models[i].ID, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports
}

func modelToCombatReport(model *CombatReportModel) (*fleet.CombatReport, error) {
	missionID, err := shared.NewMissionIDFromString(model.MissionID)
	if err != nil {
		return nil, err
	}
	attackerLosses, err := countsFromJSON(model.AttackerLosses)
	if err != nil {
		return nil, err
	}
	defenderLosses, err := countsFromJSON(model.DefenderLosses)
	if err != nil {
		return nil, err
	}

	return &fleet.CombatReport{
		ID:             model.ID,
		MissionID:      missionID,
		Coordinates:    shared.Coordinates{Galaxy: model.Galaxy, System: model.System, Position: model.Position},
		Timestamp:      model.Timestamp,
		Outcome:        fleet.CombatOutcome(model.Outcome),
		AttackerLosses: attackerLosses,
		DefenderLosses: defenderLosses,
		Debris:         shared.NewResources(model.DebrisMetal, model.DebrisCrystal, 0),
		Plunder:        shared.NewResources(model.PlunderMetal, model.PlunderCrystal, model.PlunderDeut),
	}, nil
}

func modelToEspionageReport(model *EspionageReportModel) (*fleet.EspionageReport, error) {
	missionID, err := shared.NewMissionIDFromString(model.MissionID)
	if err != nil {
		return nil, err
	}
	ships, err := countsFromJSON(model.Ships)
	if err != nil {
		return nil, err
	}
	defenses, err := countsFromJSON(model.Defenses)
	if err != nil {
		return nil, err
	}

	return &fleet.EspionageReport{
		ID:          model.ID,
		MissionID:   missionID,
		Coordinates: shared.Coordinates{Galaxy: model.Galaxy, System: model.System, Position: model.Position},
		Timestamp:   model.Timestamp,
		Resources:   shared.NewResources(model.Metal, model.Crystal, model.Deuterium),
		Ships:       ships,
		Defenses:    defenses,
	}, nil
}
