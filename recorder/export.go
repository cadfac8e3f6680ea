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
	"encoding/json"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/tarotlab/errs"
	"github.com/zintix-labs/tarotlab/stats"
)

// ExportReport 將統計報告以 zstd 壓縮的 JSON 寫出。
//
// 報告若尚未 Done 會先結算；輸出格式為單一 zstd frame 包 JSON
func ExportReport(w io.Writer, report *stats.StatReport) error {
	if report == nil {
		return errs.NewWarn("export nil report")
	}
	report.Done()

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errs.Wrap(err, "new zstd writer")
	}

	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		zw.Close()
		return errs.Wrap(err, "encode report json")
	}
	if err := zw.Close(); err != nil {
		return errs.Wrap(err, "close zstd writer")
	}
	return nil
}

// ExportReportFile 將統計報告寫到檔案，慣例副檔名 .json.zst。
func ExportReportFile(path string, report *stats.StatReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create report file")
	}
	if err := ExportReport(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(err, "close report file")
	}
	return nil
}

// ReadReport 讀回 ExportReport 寫出的報告，供驗證或後處理。
func ReadReport(r io.Reader) (*stats.StatReport, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(err, "new zstd reader")
	}
	defer zr.Close()

	report := new(stats.StatReport)
	if err := json.NewDecoder(zr).Decode(report); err != nil {
		return nil, errs.Wrap(err, "decode report json")
	}
	return report, nil
}
