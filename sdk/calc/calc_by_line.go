package calc

import (
	"github.com/zintix-labs/tarotlab/sdk/buf"
)

// CalcByLine 依線下注規則計算盤面分數，會同時處理 LTR/RTL 兩種方向。
func CalcByLine(betMult int, screen []int16, gmr *buf.GameModeResult, sc *ScreenCalculator) {

	// 取得計算結果
	paidMask := sc.paidMask

	// 沒有可計分圖標，直接回傳空結果
	if paidMask == 0 {
		return
	}
	// LTR
	if sc.LTR {
		calcOneDirection(betMult, screen, sc, 0, gmr)
	}
	// RTL
	if sc.RTL {
		calcOneDirection(betMult, screen, sc, 1, gmr)
	}
}

// calcOneDirection 這個函式做「方向專屬的準備工作」與「每條線的外層流程」。
//
// 單線規則：
//  1. target 為線上首個非 wild 符號；整線皆 wild 時 target 即為 wild。
//  2. 自首格起算連續命中長度，target 本身或任一 wild 皆可延長。
//  3. 命中長度達該符號最低派彩顆數且查表分數 > 0 才計分。
func calcOneDirection(betMult int, screen []int16, sc *ScreenCalculator, direction uint8, cr *buf.GameModeResult) {
	cols := sc.Cols
	starts := sc.LineTableIndex

	// 方向專屬的平坦線表
	var flat []int16
	if direction == 1 {
		flat = sc.LineTableFlatRTL
	} else {
		flat = sc.LineTableFlat
	}

	// 局部快取
	wildMask := sc.wildMask
	paidMask := sc.paidMask
	payFlat := sc.PayTableFlat
	payIdx := sc.PayTableIndex
	minPay := sc.minPayCount

	// 逐線
	for lineIdx := 0; lineIdx < sc.LineCount; lineIdx++ {
		start := starts[lineIdx]
		line := flat[start : start+cols] // 固定長度，BCE 友善

		// ── 找 target：線上首個非 wild 符號 ──
		target := screen[line[0]]
		for pos := 0; pos < cols; pos++ {
			s := screen[line[pos]]
			if wildMask&(1<<uint(s)) == 0 {
				target = s
				break
			}
		}

		// ── 自首格起算連續命中長度 ──
		count := 0
		for pos := 0; pos < cols; pos++ {
			s := screen[line[pos]]
			if s == target || wildMask&(1<<uint(s)) != 0 {
				count++
				continue
			}
			break
		}

		// 整線 wild 時 count 必為 cols；此分支僅防禦用
		winSym := target
		if wildMask&(1<<uint(target)) != 0 && count < cols {
			winSym = screen[line[count]]
		}

		if count < minPay[int(winSym)] {
			continue
		}
		if paidMask&(1<<uint(winSym)) == 0 {
			continue
		}

		// 查表（CSR：base + (count-1)）
		pay := payFlat[payIdx[int(winSym)]+(count-1)]
		if pay > 0 {
			win := betMult * pay
			cr.RecordDetail(win, winSym, lineIdx, count, 0, direction, line[:count])
		}
	}
}
