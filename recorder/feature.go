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
	"github.com/zintix-labs/tarotlab/sdk/buf"
	"github.com/zintix-labs/tarotlab/spec"
)

// 特性統計讀取主模式(mode 0)的 GameModeResult.Trigger，代碼約定:
//
//	0  無事件
//	>0 特性代碼，1 起算，對應 RegisterFeatureNames 註冊的名稱
//	-1 出現單列塔羅但未觸發
//	-2 出現多列異種塔羅但未觸發
const (
	TriggerNone        = 0
	TriggerTeaseSingle = -1
	TriggerTeaseMixed  = -2
)

var featureNames = map[spec.GID][]string{}

// RegisterFeatureNames 註冊遊戲的特性名稱。
//
// names[0] 對應 Trigger 代碼 1。通常由遊戲邏輯包在 init 時註冊
func RegisterFeatureNames(id spec.GID, names []string) {
	featureNames[id] = names
}

// FeatureNamesFor 回傳已註冊的特性名稱，未註冊回傳 nil。
func FeatureNamesFor(id spec.GID) []string {
	return featureNames[id]
}

// FeatureRecord 特性遊戲統計
//
// Triggers/Winnings 以特性代碼-1為索引；Winnings 歸屬該特性的 FreeWin
type FeatureRecord struct {
	Triggers    []int
	Winnings    []int
	BaseHits    int // 主模式有贏分的局數
	SingleTarot int // 單列塔羅未觸發局數
	MixedTarot  int // 多列異種塔羅未觸發局數
}

func newFeatureRecord(id spec.GID) *FeatureRecord {
	n := len(featureNames[id])
	return &FeatureRecord{
		Triggers: make([]int, n),
		Winnings: make([]int, n),
	}
}

func (f *FeatureRecord) record(sr *buf.SpinResult) {
	gm0 := sr.GameModeList[0]
	if gm0.TotalWin > 0 {
		f.BaseHits++
	}
	t := gm0.Trigger
	switch {
	case t > 0:
		f.grow(t)
		f.Triggers[t-1]++
		f.Winnings[t-1] += sr.TotalWin - gm0.TotalWin
	case t == TriggerTeaseSingle:
		f.SingleTarot++
	case t == TriggerTeaseMixed:
		f.MixedTarot++
	}
}

func (f *FeatureRecord) merge(src *FeatureRecord) {
	f.grow(len(src.Triggers))
	for i := range src.Triggers {
		f.Triggers[i] += src.Triggers[i]
		f.Winnings[i] += src.Winnings[i]
	}
	f.BaseHits += src.BaseHits
	f.SingleTarot += src.SingleTarot
	f.MixedTarot += src.MixedTarot
}

// grow 保證容量涵蓋特性代碼 n；未註冊名稱的遊戲也能累計
func (f *FeatureRecord) grow(n int) {
	for len(f.Triggers) < n {
		f.Triggers = append(f.Triggers, 0)
		f.Winnings = append(f.Winnings, 0)
	}
}
