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

// Package arcana 打包 Arcana 遊戲的設定與邏輯，
// 提供模擬器與後端服務直接可用的組裝入口。
package arcana

import (
	"github.com/zintix-labs/tarotlab"
	"github.com/zintix-labs/tarotlab/arcana/arcana_configs"
	"github.com/zintix-labs/tarotlab/arcana/arcana_logic"
	"github.com/zintix-labs/tarotlab/catalog"
	"github.com/zintix-labs/tarotlab/errs"
	"github.com/zintix-labs/tarotlab/sdk/core"
	"github.com/zintix-labs/tarotlab/server/logger"
	"github.com/zintix-labs/tarotlab/server/svrcfg"
)

func New() (*catalog.Catalog, error) {
	return catalog.New(arcana_configs.FS)
}

// NewLab 以內嵌設定與本模組邏輯組裝一個可直接使用的 Lab。
func NewLab() (*tarotlab.Lab, error) {
	return tarotlab.NewAuto(
		core.Default(),
		tarotlab.Configs(arcana_configs.FS),
		tarotlab.Logics(arcana_logic.Logics),
	)
}

func NewServerConfig() (*svrcfg.SvrCfg, error) {
	lab, err := NewLab()
	if err != nil {
		return nil, errs.NewFatal("new lab failed:" + err.Error())
	}
	scfg := &svrcfg.SvrCfg{
		Log:         logger.NewDefaultAsyncLogger(logger.ModeDev),
		SlotBufSize: 1,
		Lab:         lab,
	}
	return scfg, nil
}
