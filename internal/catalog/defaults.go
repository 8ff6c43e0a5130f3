package catalog

import "github.com/covercheck-dev/covercheck/internal/model"

// DefaultEntries returns the built-in demo catalog: deposit products
// published as insured, spanning commercial banks, savings banks and
// cooperatives. Used by the CLI and server when no catalog CSV is supplied.
// Names keep the feed's original spacing; matching normalizes anyway.
func DefaultEntries() []model.CatalogEntry {
	return []model.CatalogEntry{
		{Institution: "국민은행", Product: "KB스타 정기예금"},
		{Institution: "국민은행", Product: "KB 보통예금"},
		{Institution: "국민은행", Product: "KB 외화정기예금"},
		{Institution: "신한은행", Product: "신한 쏠편한 정기예금"},
		{Institution: "신한은행", Product: "신한 주거래 급여통장"},
		{Institution: "신한은행", Product: "신한 원금보전 금전신탁"},
		{Institution: "우리은행", Product: "우리 WON 정기예금"},
		{Institution: "우리은행", Product: "우리 급여통장"},
		{Institution: "하나은행", Product: "하나 원큐 정기예금"},
		{Institution: "하나은행", Product: "하나 입출금통장"},
		{Institution: "하나은행", Product: "하나 밀리언달러 외화예금"},
		{Institution: "카카오뱅크", Product: "카카오뱅크 정기예금"},
		{Institution: "카카오뱅크", Product: "세이프박스"},
		{Institution: "SBI저축은행", Product: "SBI 회전 정기예금"},
		{Institution: "SBI저축은행", Product: "사이다 입출금통장"},
		{Institution: "OK저축은행", Product: "OK 정기예금"},
		{Institution: "OK저축은행", Product: "OK 파킹통장"},
		{Institution: "페퍼저축은행", Product: "페퍼 회전정기예금"},
		{Institution: "페퍼저축은행", Product: "페퍼스 파킹통장"},
		{Institution: "신협", Product: "신협 정기예탁금"},
		{Institution: "신협", Product: "신협 보통예탁금"},
		{Institution: "새마을금고", Product: "MG 정기예탁금"},
		{Institution: "새마을금고", Product: "MG 보통예탁금"},
		{Institution: "안양농협", Product: "농협 정기예탁금"},
	}
}
