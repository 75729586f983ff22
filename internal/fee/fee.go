// Package fee implements the exact integer fee split applied to every
// event value before publisher credit. All divisions floor; the parts
// always sum back to the gross amount.
package fee

import (
	"github.com/shopspring/decimal"

	"github.com/clickchain/settlement/internal/domain"
)

// Split divides a gross click amount into license fee, operator fee and net
// payout. The license fee is taken off the gross, the operator fee off the
// remainder, both floored, so license + operator + net == gross exactly.
// Non-positive gross yields zero fees and net = gross.
func Split(gross domain.Click, licenseRate, operatorRate decimal.Decimal) (license, operator, net domain.Click) {
	if gross <= 0 {
		return 0, 0, gross
	}

	license = floorMul(gross, licenseRate)
	remaining := gross - license
	operator = floorMul(remaining, operatorRate)
	net = remaining - operator

	return license, operator, net
}

// SplitWithCommunity is Split with an additional community fee taken off the
// remainder ahead of the operator cut. license + community + operator + net
// == gross exactly.
func SplitWithCommunity(gross domain.Click, licenseRate, communityRate, operatorRate decimal.Decimal) (license, community, operator, net domain.Click) {
	if gross <= 0 {
		return 0, 0, 0, gross
	}

	license = floorMul(gross, licenseRate)
	remaining := gross - license
	community = floorMul(remaining, communityRate)
	remaining -= community
	operator = floorMul(remaining, operatorRate)
	net = remaining - operator

	return license, community, operator, net
}

func floorMul(amount domain.Click, rate decimal.Decimal) domain.Click {
	return domain.Click(decimal.NewFromInt(int64(amount)).Mul(rate).Floor().IntPart())
}
