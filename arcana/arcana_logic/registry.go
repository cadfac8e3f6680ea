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

// Package arcana_logic 實作 Arcana (GID 9001) 的遊戲邏輯：
// 5x3、25 線主遊戲，塔羅整列觸發五種特性
// (Fool / Cups / Lovers / Priestess / Death)。
//
// 抽號順序即合約：每個模式消耗亂數的順序與個數都固定，
// 相同 seed 必須產生逐位一致的結果。
package arcana_logic

import (
	"github.com/zintix-labs/tarotlab/sdk/slot"
)

// Logics 是本模組對外提供的邏輯註冊表，交由 Lab 合併使用。
var Logics = slot.NewLogicRegistry()
