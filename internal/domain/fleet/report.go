package fleet

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// CombatOutcome summarizes who held the field after an attack
type CombatOutcome string

const (
	OutcomeAttackerWon CombatOutcome = "ATTACKER_WON"
	OutcomeDefenderWon CombatOutcome = "DEFENDER_WON"
	OutcomeDraw        CombatOutcome = "DRAW"
)

// CombatReport is the message emitted once per resolved attack
type CombatReport struct {
	ID             string
	MissionID      shared.MissionID
	Coordinates    shared.Coordinates
	Timestamp      time.Time
	Outcome        CombatOutcome
	AttackerLosses map[catalog.EntityID]int
	DefenderLosses map[catalog.EntityID]int
	Debris         shared.Resources
	Plunder        shared.Resources
}

// EspionageReport is the snapshot a probe takes of the target on arrival
type EspionageReport struct {
	ID          string
	MissionID   shared.MissionID
	Coordinates shared.Coordinates
	Timestamp   time.Time
	Resources   shared.Resources
	Ships       map[catalog.EntityID]int
	Defenses    map[catalog.EntityID]int
}

// ReportSink receives reports produced by mission resolution. The daemon
// wires a persisting sink; tests use the in-memory one.
type ReportSink interface {
	RecordCombat(report *CombatReport)
	RecordEspionage(report *EspionageReport)
}

// MemoryReportSink collects reports in memory, newest last
type MemoryReportSink struct {
	mu        sync.Mutex
	combat    []*CombatReport
	espionage []*EspionageReport
}

// NewMemoryReportSink creates an empty in-memory sink
func NewMemoryReportSink() *MemoryReportSink {
	return &MemoryReportSink{}
}

func (s *MemoryReportSink) RecordCombat(report *CombatReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.combat = append(s.combat, report)
}

func (s *MemoryReportSink) RecordEspionage(report *EspionageReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.espionage = append(s.espionage, report)
}

// CombatReports returns a snapshot of recorded combat reports
func (s *MemoryReportSink) CombatReports() []*CombatReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*CombatReport, len(s.combat))
	copy(out, s.combat)
	return out
}

// EspionageReports returns a snapshot of recorded espionage reports
func (s *MemoryReportSink) EspionageReports() []*EspionageReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*EspionageReport, len(s.espionage))
	copy(out, s.espionage)
	return out
}

func newReportID() string {
	return uuid.New().String()
}
