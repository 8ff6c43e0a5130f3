// Package mock builds randomized demo holdings for a fictional depositor.
// Output is deterministic for a given seed, so fixtures can be regenerated
// byte-for-byte.
package mock

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/model"
)

// Options controls generation. Same Seed and Count always produce the same
// holdings in the same order.
type Options struct {
	Seed  int64
	Count int
}

// template is one product the generator can hand out. Templates with an
// empty category/currency produce untagged holdings that exercise the
// classifier's inference path; product names deliberately drift in spacing
// from the demo catalog to exercise normalized matching.
type template struct {
	institution string
	license     string
	product     string
	category    model.Category
	currency    string
	termMonths  int
	usd         bool // balance drawn in USD with an own FX rate
}

var templates = []template{
	// On-catalog products, mostly tagged.
	{"국민은행", "kb-bank", "KB스타 정기예금", model.CategoryTerm, model.CurrencyKRW, 12, false},
	{"국민은행", "kb-bank", "KB스타정기예금", "", "", 12, false},
	{"국민은행", "kb-bank", "KB 보통예금", model.CategoryDemand, model.CurrencyKRW, 0, false},
	{"신한은행", "shinhan-bank", "신한 쏠편한 정기예금", model.CategoryTerm, model.CurrencyKRW, 12, false},
	{"신한은행", "shinhan-bank", "신한 주거래 급여통장", "", "", 0, false},
	{"신한은행", "shinhan-bank", "신한 원금보전 금전신탁", model.CategoryTrust, model.CurrencyKRW, 0, false},
	{"우리은행", "woori-bank", "우리 WON 정기예금", model.CategoryTerm, model.CurrencyKRW, 12, false},
	{"하나은행", "hana-bank", "하나 입출금통장", model.CategoryDemand, model.CurrencyKRW, 0, false},
	{"하나은행", "hana-bank", "하나 밀리언달러 외화예금", model.CategoryFX, model.CurrencyUSD, 12, true},
	{"카카오뱅크", "kakao-bank", "세이프박스", model.CategoryDemand, model.CurrencyKRW, 0, false},
	{"SBI저축은행", "sbi-savings", "사이다 입출금통장", "", "", 0, false},
	{"SBI저축은행", "sbi-savings", "SBI 회전 정기예금", model.CategoryTerm, model.CurrencyKRW, 12, false},
	{"OK저축은행", "ok-savings", "OK 파킹통장", model.CategoryDemand, model.CurrencyKRW, 0, false},
	{"OK저축은행", "ok-savings", "OK정기예금", "", "", 12, false},
	{"페퍼저축은행", "pepper-savings", "페퍼스 파킹통장", model.CategoryDemand, model.CurrencyKRW, 0, false},
	{"신협", "cu", "신협 정기예탁금", model.CategoryTerm, model.CurrencyKRW, 12, false},
	{"새마을금고", "kfcc", "MG 보통예탁금", model.CategoryDemand, model.CurrencyKRW, 0, false},
	{"안양농협", "anyang-nh", "농협 정기예탁금", model.CategoryTerm, model.CurrencyKRW, 12, false},
	// Off-catalog: special offers the catalog feed has not picked up, plus
	// brokerage products that are never protected.
	{"국민은행", "kb-bank", "KB 특판 정기예금", model.CategoryTerm, model.CurrencyKRW, 6, false},
	{"토스뱅크", "toss-bank", "토스뱅크 통장", model.CategoryDemand, model.CurrencyKRW, 0, false},
	{"미래에셋증권", "mirae-sec", "미래에셋 글로벌 펀드", model.CategoryInvestment, model.CurrencyKRW, 0, false},
	{"미래에셋증권", "mirae-sec", "발행어음 CMA", model.CategoryInvestment, model.CurrencyKRW, 0, false},
	{"삼성증권", "samsung-sec", "삼성 ELS 2호", model.CategoryInvestment, model.CurrencyKRW, 0, false},
}

// Generate returns Count pseudo-random holdings drawn from the template
// table. KRW balances land on whole millions between 1M and 150M; USD
// balances on whole thousands between 1k and 100k, with an FX rate within
// a few percent of the 1400 demo rate.
func Generate(opts Options) []model.Holding {
	if opts.Count <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	holdings := make([]model.Holding, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		tpl := templates[rng.Intn(len(templates))]
		h := model.Holding{
			ID:          holdingID(opts.Seed, i),
			Institution: tpl.institution,
			License:     tpl.license,
			Product:     tpl.product,
			Category:    tpl.category,
			Currency:    tpl.currency,
			TermMonths:  tpl.termMonths,
		}
		if tpl.usd {
			h.Balance = decimal.NewFromInt(int64(rng.Intn(100)+1) * 1000)
			h.FXRate = decimal.NewFromInt(int64(1360 + rng.Intn(81)))
		} else {
			h.Balance = decimal.NewFromInt(int64(rng.Intn(150)+1) * 1_000_000)
		}
		holdings = append(holdings, h)
	}
	return holdings
}

// holdingID derives a stable UUID from the seed and position, keeping the
// whole fixture reproducible, IDs included.
func holdingID(seed int64, i int) string {
	name := fmt.Sprintf("covercheck-holding-%d-%d", seed, i)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
