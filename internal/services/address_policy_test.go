package services_test

import (
	"testing"

	"sol-wallet/internal/services"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
)

type AddressPolicyTestSuite struct {
	suite.Suite
}

func TestAddressPolicySuite(t *testing.T) {
	suite.Run(t, new(AddressPolicyTestSuite))
}

func (s *AddressPolicyTestSuite) TestDefaultDenylist_ContainsKnownAccount() {
	denylist := services.NewDenylist(services.DefaultDenylist...)

	s.True(denylist.IsDenied("DpMcHVRUveeUS3xYh8APDPVySVxZXa79pfzjswGjDR6S"))
	s.Equal(1, denylist.Size())
}

func (s *AddressPolicyTestSuite) TestIsDenied_ExactMatchOnly() {
	account := gofakeit.LetterN(44)
	denylist := services.NewDenylist(account)

	s.True(denylist.IsDenied(account))
	s.False(denylist.IsDenied(account[:43]))
	s.False(denylist.IsDenied(" " + account))
	s.False(denylist.IsDenied(gofakeit.LetterN(44)))
	s.False(denylist.IsDenied(""))
}

func (s *AddressPolicyTestSuite) TestNewDenylist_IgnoresBlanksAndDuplicates() {
	account := gofakeit.LetterN(44)
	denylist := services.NewDenylist("", "  ", account, " "+account+" ")

	s.Equal(1, denylist.Size())
	s.True(denylist.IsDenied(account))
}

func (s *AddressPolicyTestSuite) TestNilDenylist_DeniesNothing() {
	var denylist *services.Denylist

	s.False(denylist.IsDenied(gofakeit.LetterN(44)))
	s.Equal(0, denylist.Size())
}
