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

package spec

import (
	"github.com/zintix-labs/tarotlab/errs"
)

// GenReelType 表示盤面生成時使用的輪帶/符號選擇策略。
type GenReelType int

const (
	GenReelTypeNone GenReelType = iota
	GenReelByReelIdx
	GenReelBySymbolWeight
)

var GenReelTypeMap = map[string]GenReelType{
	"GenReelTypeNone":       GenReelTypeNone,
	"GenReelByReelIdx":      GenReelByReelIdx,
	"GenReelBySymbolWeight": GenReelBySymbolWeight,
}

// Reel 一條輪帶設定，可以產出一軸結果的最小單位
type Reel struct {
	ReelSymbols []int16 `yaml:"symbols" json:"symbols"`
	ReelWeights []int   `yaml:"weights" json:"weights"`
	ReelLength  int     `yaml:"-"       json:"-"`
}

// ReelSet 一組輪帶設定，可以產出一個盤面的最小單位
type ReelSet struct {
	Weight int    `yaml:"weight" json:"weight"`
	Reels  []Reel `yaml:"reels"  json:"reels"`
}

// GenScreenSetting 生成盤面的設定
type GenScreenSetting struct {
	GenReelTypeStr string      `yaml:"gen_reel_type"   json:"gen_reel_type"`
	GenReelType    GenReelType `yaml:"-"               json:"-"`
	ReelSetGroup   []ReelSet   `yaml:"reel_set_group"  json:"reel_set_group"`
	ReelSetWeights []int       `yaml:"-"               json:"-"`
	initFlag       bool
}

// Init 檢查生成盤面所需的設定並展開權重資料。
// 權重抽取在 runtime 使用線性遞減法，因此這裡只保留原始權重陣列。
func (gs *GenScreenSetting) Init() error {
	if gs.initFlag {
		return nil
	}

	// 1. 解析 GenReelType
	if gs.GenReelType == GenReelTypeNone {
		grt, ok := GenReelTypeMap[gs.GenReelTypeStr]
		if !ok {
			return errs.NewFatal("invalid gen reel type")
		}
		gs.GenReelType = grt
	}

	// 2. 檢查每組輪帶並補齊默認權重
	gs.ReelSetWeights = make([]int, len(gs.ReelSetGroup))
	for i := range gs.ReelSetGroup {
		rs := &gs.ReelSetGroup[i]
		gs.ReelSetWeights[i] = rs.Weight

		// 轉Reel內部資料
		for j := range rs.Reels {
			reel := &rs.Reels[j]
			if len(reel.ReelSymbols) == 0 {
				return errs.NewFatal("len(ReelSymbols) == 0")
			}
			if len(reel.ReelWeights) == 0 {
				// 如果長度為0 / nil 默認等權重
				reel.ReelWeights = make([]int, len(reel.ReelSymbols))
				for i := range len(reel.ReelSymbols) {
					reel.ReelWeights[i] = 1
				}
			}
			if len(reel.ReelSymbols) != len(reel.ReelWeights) {
				return errs.NewFatal("len(ReelSymbols) != len(ReelWeights)")
			}
			reel.ReelLength = len(reel.ReelSymbols)
		}
	}

	gs.initFlag = true
	return nil
}
