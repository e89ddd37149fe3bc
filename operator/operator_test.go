package operator_test

import (
	"os"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/tedsuo/ifrit"

	"github.com/appmetrics/appmonitor/fakes"
	"github.com/appmetrics/appmonitor/operator"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OperatorRunner", func() {
	var (
		fakeOperator *fakes.FakeOperator
		clk          *fakeclock.FakeClock
		process      ifrit.Process
	)

	BeforeEach(func() {
		fakeOperator = &fakes.FakeOperator{}
		clk = fakeclock.NewFakeClock(time.Now())

		runner := operator.NewOperatorRunner(fakeOperator, time.Hour, clk,
			lagertest.NewTestLogger("operator-test"))
		process = ifrit.Invoke(runner)
	})

	AfterEach(func() {
		process.Signal(os.Interrupt)
		Eventually(process.Wait()).Should(Receive(BeNil()))
	})

	It("operates once immediately", func() {
		Eventually(fakeOperator.OperateCallCount).Should(Equal(1))
	})

	It("cancels in-flight work on shutdown", func() {
		Eventually(fakeOperator.OperateCallCount).Should(Equal(1))
		ctx := fakeOperator.OperateArgsForCall(0)
		Expect(ctx.Err()).NotTo(HaveOccurred())

		process.Signal(os.Interrupt)
		Eventually(process.Wait()).Should(Receive(BeNil()))
		Eventually(ctx.Done()).Should(BeClosed())
	})

	It("operates again on every interval", func() {
		Eventually(fakeOperator.OperateCallCount).Should(Equal(1))

		clk.WaitForWatcherAndIncrement(time.Hour)
		Eventually(fakeOperator.OperateCallCount).Should(Equal(2))

		clk.WaitForWatcherAndIncrement(time.Hour)
		Eventually(fakeOperator.OperateCallCount).Should(Equal(3))
	})
})
