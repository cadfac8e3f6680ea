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

// Package index 提供服務主頁，列出可用的 API 路由。
package index

import (
	"net/http"
)

const indexBody = `tarotlab simulation service

routes:
  GET/POST /v1/spin       單次 spin，query/json 帶 game_name, bet_mode
  GET/POST /v1/sim        批次模擬，回傳統計報表
  GET/POST /v1/simplayer  多玩家模擬
  POST     /v1/simbycfg   以自訂 JSON 設定模擬
  POST     /v1/stat       統計報表渲染
`

// IndexHandlerFn 主頁，純文字路由索引。
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(indexBody))
}
