package swap

import (
	"testing"

	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSwapScenario(t *testing.T) {
	Convey("Given Alice and Bob holding one asset each", t, func() {
		w := newWorld(t)
		alice := weavetest.NewCondition()
		bob := weavetest.NewCondition()
		inter := weavetest.NewCondition()

		aliceAsset := w.issue(t, 42, 7, alice)
		bobAsset := w.issue(t, 34, 4, bob)
		w.fund(t, alice, 1000)
		w.fund(t, bob, 1500)

		issued, err := w.assets.Issued(w.db)
		So(err, ShouldBeNil)
		So(issued, ShouldEqual, 2)

		Convey("Alice deposits her asset with the minimum fee", func() {
			resA, err := w.deliver(alice, &DepositMsg{AssetID: aliceAsset, Fee: fee(1000), Intermediary: inter.Address()})
			So(err, ShouldBeNil)
			wrapperA := resA.Data

			So(w.owner(t, aliceAsset), ShouldResemble, CustodyAddress(wrapperA))
			So(w.balance(t, alice.Address()), ShouldEqual, 0)

			Convey("Bob deposits with a fee of 500 and fails", func() {
				_, err := w.deliver(bob, &DepositMsg{AssetID: bobAsset, Fee: fee(500), Intermediary: inter.Address()})
				So(ErrInsufficientFee.Is(err), ShouldBeTrue)
				So(w.owner(t, bobAsset), ShouldResemble, bob.Address())
				So(w.balance(t, bob.Address()), ShouldEqual, 1500)

				Convey("Bob retries with a fee of 1000 and the intermediary executes the swap", func() {
					resB, err := w.deliver(bob, &DepositMsg{AssetID: bobAsset, Fee: fee(1000), Intermediary: inter.Address()})
					So(err, ShouldBeNil)
					wrapperB := resB.Data
					So(w.balance(t, bob.Address()), ShouldEqual, 500)

					_, err = w.deliver(inter, &ExecuteMsg{WrapperA: wrapperA, WrapperB: wrapperB})
					So(err, ShouldBeNil)

					So(w.owner(t, bobAsset), ShouldResemble, alice.Address())
					So(w.owner(t, aliceAsset), ShouldResemble, bob.Address())
					So(w.balance(t, inter.Address()), ShouldEqual, 2000)
					So(w.hasWrapper(t, wrapperA), ShouldBeFalse)
					So(w.hasWrapper(t, wrapperB), ShouldBeFalse)

					got, err := w.assets.Get(w.db, bobAsset)
					So(err, ShouldBeNil)
					So(got.Magic, ShouldEqual, 34)
					So(got.Strength, ShouldEqual, 4)

					Convey("Executing the same pair again fails", func() {
						_, err := w.deliver(inter, &ExecuteMsg{WrapperA: wrapperA, WrapperB: wrapperB})
						So(errors.ErrInvalidOwnership.Is(err), ShouldBeTrue)
						So(w.balance(t, inter.Address()), ShouldEqual, 2000)
					})
				})
			})

			Convey("The intermediary cannot touch the locked asset", func() {
				_, err := w.deliver(inter, &DepositMsg{AssetID: aliceAsset, Fee: fee(1000), Intermediary: inter.Address()})
				So(errors.ErrInvalidOwnership.Is(err), ShouldBeTrue)
			})

			Convey("Alice cannot deposit the same asset twice", func() {
				w.fund(t, alice, 1000)
				_, err := w.deliver(alice, &DepositMsg{AssetID: aliceAsset, Fee: fee(1000), Intermediary: inter.Address()})
				So(errors.ErrInvalidOwnership.Is(err), ShouldBeTrue)
			})
		})
	})
}
