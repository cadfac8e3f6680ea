// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recorder

import (
	"bytes"
	"testing"

	"github.com/zintix-labs/tarotlab/sdk/buf"
)

func newRecordedSpin(totalWin, baseWin, trigger, modeCount int) *buf.SpinResult {
	modes := make([]*buf.GameModeResult, modeCount)
	modes[0] = &buf.GameModeResult{TotalWin: baseWin, Trigger: trigger}
	for i := 1; i < modeCount; i++ {
		modes[i] = &buf.GameModeResult{TotalWin: totalWin - baseWin}
	}
	return &buf.SpinResult{
		TotalWin:      totalWin,
		GameName:      "Arcana",
		GameID:        9001,
		Bet:           200,
		BetMode:       0,
		BetMult:       1,
		GameModeCount: modeCount,
		GameModeList:  modes,
		IsGameEnd:     true,
	}
}

func TestSpinRecorderFeature(t *testing.T) {
	RegisterFeatureNames(9001, []string{"Fool", "Cups", "Lovers", "Priestess", "Death"})
	s, err := NewSpinRecorder("Arcana", 9001, []int{200}, 1000, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Record(newRecordedSpin(160, 160, TriggerNone, 1))        // 主模式贏分
	s.Record(newRecordedSpin(0, 0, TriggerTeaseSingle, 1))     // 單列塔羅
	s.Record(newRecordedSpin(0, 0, TriggerTeaseMixed, 1))      // 異種塔羅
	s.Record(newRecordedSpin(5000, 200, 1, 2))                 // Fool
	s.Record(newRecordedSpin(1200, 0, 5, 2))                   // Death

	if s.Basic.Rounds != 5 || s.Basic.TotalBet != 1000 {
		t.Fatalf("unexpected basic record: %+v", s.Basic)
	}
	if s.Basic.Trigger != 2 {
		t.Fatalf("expected 2 triggers, got %d", s.Basic.Trigger)
	}
	f := s.Feature
	if f.Triggers[0] != 1 || f.Winnings[0] != 4800 {
		t.Fatalf("unexpected fool record: %+v", f)
	}
	if f.Triggers[4] != 1 || f.Winnings[4] != 1200 {
		t.Fatalf("unexpected death record: %+v", f)
	}
	if f.BaseHits != 2 {
		t.Fatalf("expected 2 base hits, got %d", f.BaseHits)
	}
	if f.SingleTarot != 1 || f.MixedTarot != 1 {
		t.Fatalf("unexpected tease counters: %+v", f)
	}

	report := s.Done()
	report.Done()
	if report.Feature.TriggerRate[0] != 0.2 {
		t.Fatalf("unexpected trigger rate: %v", report.Feature.TriggerRate)
	}
	if report.Feature.BaseHitRate != 0.4 {
		t.Fatalf("unexpected base hit rate: %v", report.Feature.BaseHitRate)
	}
	if len(report.Feature.Names) != 5 || report.Feature.Names[4] != "Death" {
		t.Fatalf("unexpected feature names: %v", report.Feature.Names)
	}
}

func TestMergeSpinRecorder(t *testing.T) {
	RegisterFeatureNames(9001, []string{"Fool", "Cups", "Lovers", "Priestess", "Death"})
	a, _ := NewSpinRecorder("Arcana", 9001, []int{200}, 1000, 0)
	b, _ := NewSpinRecorder("Arcana", 9001, []int{200}, 1000, 0)

	a.Record(newRecordedSpin(400, 400, TriggerNone, 1))
	a.Record(newRecordedSpin(900, 100, 2, 2))
	b.Record(newRecordedSpin(0, 0, TriggerTeaseSingle, 1))
	b.Record(newRecordedSpin(700, 0, 2, 2))

	m, err := MergeSpinRecorder([]*SpinRecorder{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Basic.Rounds != 4 || m.Basic.TotalWin != 2000 {
		t.Fatalf("unexpected merged basic: %+v", m.Basic)
	}
	if m.Feature.Triggers[1] != 2 || m.Feature.Winnings[1] != 1500 {
		t.Fatalf("unexpected merged feature: %+v", m.Feature)
	}
	if m.Feature.SingleTarot != 1 || m.Feature.BaseHits != 2 {
		t.Fatalf("unexpected merged counters: %+v", m.Feature)
	}
}

func TestMergeSpinRecorderRejectsMismatch(t *testing.T) {
	a, _ := NewSpinRecorder("Arcana", 9001, []int{200}, 1000, 0)
	b, _ := NewSpinRecorder("Other", 9001, []int{200}, 1000, 0)
	if _, err := MergeSpinRecorder([]*SpinRecorder{a, b}); err == nil {
		t.Fatalf("expected error for different game names")
	}
}

func TestExportReportRoundTrip(t *testing.T) {
	RegisterFeatureNames(9001, []string{"Fool", "Cups", "Lovers", "Priestess", "Death"})
	s, _ := NewSpinRecorder("Arcana", 9001, []int{200}, 1000, 0)
	s.Record(newRecordedSpin(160, 160, TriggerNone, 1))
	s.Record(newRecordedSpin(5000, 200, 1, 2))

	var out bytes.Buffer
	report := s.Done()
	if err := ExportReport(&out, report); err != nil {
		t.Fatalf("unexpected export error: %v", err)
	}
	back, err := ReadReport(&out)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if back.Summary.TotalWin != report.Summary.TotalWin {
		t.Fatalf("total win mismatch: %d vs %d", back.Summary.TotalWin, report.Summary.TotalWin)
	}
	if back.Summary.Rounds != 2 || back.Feature.Triggers[0] != 1 {
		t.Fatalf("unexpected decoded report: %+v", back.Summary)
	}
}

func TestNewSpinRecorderValidates(t *testing.T) {
	if _, err := NewSpinRecorder("Arcana", 9001, nil, 0, 0); err == nil {
		t.Fatalf("expected error for empty bet units")
	}
	if _, err := NewSpinRecorder("Arcana", 9001, []int{200}, 0, 3); err == nil {
		t.Fatalf("expected error for bet mode out of range")
	}
	if _, err := NewSpinRecorder("Arcana", 9001, []int{200}, -1, 0); err == nil {
		t.Fatalf("expected error for negative init bets")
	}
}
