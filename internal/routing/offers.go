package routing

import (
	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/model"
)

// DefaultOffers returns the built-in rate-offer table: a snapshot of
// parking and term-deposit rates across banks and savings banks, used when
// the caller supplies no offer list of its own. Reference data only; real
// rates move daily.
func DefaultOffers() []model.RateOffer {
	return []model.RateOffer{
		offer("페퍼저축은행", "pepper-savings", "페퍼 회전정기예금", 12, "0.042"),
		offer("OK저축은행", "ok-savings", "OK 정기예금", 12, "0.041"),
		offer("SBI저축은행", "sbi-savings", "SBI 회전 정기예금", 12, "0.040"),
		offer("새마을금고", "kfcc", "MG 정기예탁금", 12, "0.038"),
		offer("신협", "cu", "신협 정기예탁금", 12, "0.037"),
		offer("OK저축은행", "ok-savings", "OK 파킹통장", 0, "0.035"),
		offer("하나은행", "hana-bank", "하나 원큐 정기예금", 12, "0.033"),
		offer("SBI저축은행", "sbi-savings", "사이다 입출금통장", 0, "0.032"),
		offer("신한은행", "shinhan-bank", "신한 쏠편한 정기예금", 24, "0.032"),
		offer("국민은행", "kb-bank", "KB스타 정기예금", 12, "0.031"),
		offer("우리은행", "woori-bank", "우리 WON 정기예금", 12, "0.030"),
		offer("카카오뱅크", "kakao-bank", "세이프박스", 0, "0.028"),
	}
}

func offer(institution, license, product string, termMonths int, rate string) model.RateOffer {
	return model.RateOffer{
		Institution: institution,
		License:     license,
		Product:     product,
		TermMonths:  termMonths,
		AnnualRate:  decimal.RequireFromString(rate),
	}
}
