package sqldb_test

import (
	"time"

	"code.cloudfoundry.org/lager/v3/lagertest"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/db/sqldb"
	"github.com/appmetrics/appmonitor/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LockSqldb", func() {
	var (
		ldb  *sqldb.LockSQLDB
		lock *models.Lock
		err  error
	)

	BeforeEach(func() {
		logger := lagertest.NewTestLogger("lock-sqldb-test")
		ldb, err = sqldb.NewLockSQLDB(db.DatabaseConfig{URL: dbUrl}, logger)
		Expect(err).NotTo(HaveOccurred())

		_, err = dbConn.Exec("DELETE FROM locks")
		Expect(err).NotTo(HaveOccurred())

		lock = &models.Lock{Key: "schedule-1", Owner: "owner-a", Ttl: 15 * time.Minute}
	})

	AfterEach(func() {
		Expect(ldb.Close()).To(Succeed())
	})

	It("acquires a free lease", func() {
		acquired, err := ldb.Lock(lock)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeTrue())
	})

	It("renews a lease it already owns", func() {
		_, err := ldb.Lock(lock)
		Expect(err).NotTo(HaveOccurred())

		acquired, err := ldb.Lock(lock)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeTrue())
	})

	It("refuses a live lease held by another owner without error", func() {
		_, err := ldb.Lock(lock)
		Expect(err).NotTo(HaveOccurred())

		competitor := &models.Lock{Key: "schedule-1", Owner: "owner-b", Ttl: 15 * time.Minute}
		acquired, err := ldb.Lock(competitor)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeFalse())
	})

	It("scopes leases by key", func() {
		_, err := ldb.Lock(lock)
		Expect(err).NotTo(HaveOccurred())

		other := &models.Lock{Key: "schedule-2", Owner: "owner-b", Ttl: 15 * time.Minute}
		acquired, err := ldb.Lock(other)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeTrue())
	})

	It("takes over an expired lease", func() {
		lock.Ttl = time.Second
		_, err := ldb.Lock(lock)
		Expect(err).NotTo(HaveOccurred())

		time.Sleep(1500 * time.Millisecond)

		competitor := &models.Lock{Key: "schedule-1", Owner: "owner-b", Ttl: 15 * time.Minute}
		acquired, err := ldb.Lock(competitor)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeTrue())
	})

	It("releases only its own lease", func() {
		_, err := ldb.Lock(lock)
		Expect(err).NotTo(HaveOccurred())

		Expect(ldb.Release("schedule-1", "owner-b")).To(Succeed())
		competitor := &models.Lock{Key: "schedule-1", Owner: "owner-b", Ttl: 15 * time.Minute}
		acquired, err := ldb.Lock(competitor)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeFalse())

		Expect(ldb.Release("schedule-1", "owner-a")).To(Succeed())
		acquired, err = ldb.Lock(competitor)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeTrue())
	})
})
