package coord_test

import (
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/client"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/coord"
	"github.com/nagielhachem/Distributed-Memory/transport"
	"github.com/nagielhachem/Distributed-Memory/worker"
)

// bootCluster boots a coordinator and nWorkers workers over a shared
// MemBus, each in its own goroutine, and returns a client plus a
// shutdown func that sends the close tag and waits for every rank's
// main loop to return.
func bootCluster(nWorkers, maxSize int) (*client.Client, func()) {
	bus := transport.NewMemBus(4)
	var wg sync.WaitGroup

	cd := coord.NewCoordinator(bus, nWorkers, maxSize)
	wg.Add(1)
	go func() { defer wg.Done(); Expect(cd.Run()).To(Succeed()) }()

	for i := 0; i < nWorkers; i++ {
		w := worker.New(bus, apc.WorkerRank(i))
		wg.Add(1)
		go func() { defer wg.Done(); Expect(w.Run()).To(Succeed()) }()
	}

	cl := client.New(bus)
	return cl, func() {
		Expect(cl.Close()).To(Succeed())
		wg.Wait()
	}
}

var _ = Describe("Coordinator lifecycle", func() {
	var (
		cl       *client.Client
		shutdown func()
	)

	BeforeEach(func() {
		cl, shutdown = bootCluster(3, 4)
	})

	AfterEach(func() {
		shutdown()
	})

	It("allocates a block with first-fit placement across workers", func() {
		id, err := cl.Allocate(10)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(BeEquivalentTo(0))

		id2, err := cl.Allocate(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(id2).NotTo(Equal(id))
	})

	It("fails allocation with out-of-memory once capacity is exhausted", func() {
		_, err := cl.Allocate(12)
		Expect(err).NotTo(HaveOccurred())

		_, err = cl.Allocate(1)
		Expect(err).To(HaveOccurred())
	})

	It("round-trips a write followed by a strided read", func() {
		id, err := cl.Allocate(10)
		Expect(err).NotTo(HaveOccurred())

		values := make([]int64, 10)
		for i := range values {
			values[i] = int64(i)
		}
		// One write per fragment keeps each request within the
		// per-request cardinality cap (max_size 4).
		Expect(cl.Write([]meta.Slice{client.Strided(id, 0, 4, 1)}, client.SeriesValue(values[0:4]))).To(Succeed())
		Expect(cl.Write([]meta.Slice{client.Strided(id, 4, 8, 1)}, client.SeriesValue(values[4:8]))).To(Succeed())
		Expect(cl.Write([]meta.Slice{client.Strided(id, 8, meta.StopUnresolved, 1)}, client.SeriesValue(values[8:]))).To(Succeed())

		blocks, err := cl.Read([]meta.Slice{client.Strided(id, 1, 9, 2)})
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(Equal([][]int64{{1, 3, 5, 7}}))
	})

	It("broadcasts a scalar across the whole descriptor", func() {
		id, err := cl.Allocate(4)
		Expect(err).NotTo(HaveOccurred())

		Expect(cl.Write([]meta.Slice{client.Strided(id, 0, meta.StopUnresolved, 1)}, client.ScalarValue(7))).To(Succeed())

		blocks, err := cl.Read([]meta.Slice{client.Strided(id, 0, meta.StopUnresolved, 1)})
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(Equal([][]int64{{7, 7, 7, 7}}))
	})

	It("rejects a read against an unknown key", func() {
		_, err := cl.Read([]meta.Slice{client.Strided(999, 0, 1, 1)})
		Expect(err).To(HaveOccurred())
	})

	It("rejects a write whose series length mismatches the descriptor", func() {
		id, err := cl.Allocate(4)
		Expect(err).NotTo(HaveOccurred())
		err = cl.Write([]meta.Slice{client.Strided(id, 0, meta.StopUnresolved, 1)}, client.SeriesValue([]int64{1, 2}))
		Expect(err).To(HaveOccurred())
	})

	It("does not restore capacity on delete", func() {
		id, err := cl.Allocate(12)
		Expect(err).NotTo(HaveOccurred())
		Expect(cl.Delete([]meta.BlockId{id})).To(Succeed())

		_, err = cl.Allocate(1)
		Expect(err).To(HaveOccurred(), "deleted space must not be reusable")
	})

	It("rejects a request for a deleted block", func() {
		id, err := cl.Allocate(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(cl.Delete([]meta.BlockId{id})).To(Succeed())

		_, err = cl.Read([]meta.Slice{client.Strided(id, 0, meta.StopUnresolved, 1)})
		Expect(err).To(HaveOccurred())
	})

	It("deletes ids up to the first unknown one, leaving earlier deletes applied", func() {
		id, err := cl.Allocate(4)
		Expect(err).NotTo(HaveOccurred())
		missing := id + 999

		err = cl.Delete([]meta.BlockId{id, missing})
		Expect(err).To(HaveOccurred())

		_, readErr := cl.Read([]meta.Slice{client.Strided(id, 0, meta.StopUnresolved, 1)})
		Expect(readErr).To(HaveOccurred(), "the id preceding the unknown one must already be gone")
	})

	It("broadcasts one value across several distinct blocks in a single write", func() {
		a, err := cl.Allocate(2)
		Expect(err).NotTo(HaveOccurred())
		b, err := cl.Allocate(2)
		Expect(err).NotTo(HaveOccurred())

		descs := []meta.Slice{
			client.Strided(a, 0, meta.StopUnresolved, 1),
			client.Strided(b, 0, meta.StopUnresolved, 1),
		}
		Expect(cl.Write(descs, client.SeriesValue([]int64{10, 20}))).To(Succeed())

		blocks, err := cl.Read(descs)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(Equal([][]int64{{10, 20}, {10, 20}}))
	})

	It("merges a fragmented block's reads in ascending rank order regardless of descriptor order", func() {
		// 6 elements over a 4-per-worker cluster fragments as
		// rank 2 [0:4), rank 3 [4:6) — write each fragment in its own
		// call to stay within the per-request cardinality cap, then
		// read the two fragments back with the descriptor touching
		// the later rank listed first.
		id, err := cl.Allocate(6)
		Expect(err).NotTo(HaveOccurred())
		Expect(cl.Write([]meta.Slice{client.Strided(id, 0, 4, 1)}, client.SeriesValue([]int64{0, 1, 2, 3}))).To(Succeed())
		Expect(cl.Write([]meta.Slice{client.Strided(id, 4, 6, 1)}, client.SeriesValue([]int64{4, 5}))).To(Succeed())

		blocks, err := cl.Read([]meta.Slice{
			client.Strided(id, 4, 6, 1),
			client.Strided(id, 2, 4, 1),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(Equal([][]int64{{2, 3, 4, 5}}))
	})
})
