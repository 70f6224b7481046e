package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/meshmodel/internal/analysis"
	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/physics"
	"github.com/san-kum/meshmodel/internal/sim"
)

var _ = Describe("Session", func() {
	var (
		g *dynamo.Grid
		s *sim.Session
	)

	BeforeEach(func() {
		g = dynamo.NewGrid(100, 100, 2*math.Pi, 2*math.Pi)
		s = sim.New(g, physics.NewWave())
	})

	It("starts running in wave mode with the tension view", func() {
		Expect(s.Entity()).To(Equal(dynamo.Wave))
		Expect(s.View()).To(Equal(dynamo.Tension))
		Expect(s.Paused()).To(BeFalse())
		Expect(s.State().Psi.At(50, 50)).To(Equal(1.0))
	})

	Describe("entangled pair seeding", func() {
		It("places two equal maxima mirrored about the centre row", func() {
			fs, err := s.Reset(dynamo.EntangledPair)
			Expect(err).NotTo(HaveOccurred())

			peaks := analysis.LocalMaxima(fs.Psi, 0.5)
			Expect(peaks).To(HaveLen(2))
			Expect(peaks[0].Value).To(Equal(peaks[1].Value))
			Expect(peaks[0].Col).To(Equal(g.Nx / 4))
			Expect(peaks[1].Col).To(Equal(g.Nx / 4))

			rows := []int{peaks[0].Row, peaks[1].Row}
			Expect(rows).To(ConsistOf(g.Ny/2-sim.PairSeedRows, g.Ny/2+sim.PairSeedRows))

			mid := g.Ly / 2
			Expect(mid - g.YAt(rows[0])).To(BeNumerically("~", g.YAt(rows[1])-mid, 2*g.Dy))
			Expect(g.XAt(peaks[0].Col)).To(BeNumerically("~", g.Lx/4, g.Dx))
		})
	})

	Describe("wave mode", func() {
		It("keeps Phi inside [0.1, 2.0] for a long run", func() {
			for i := 0; i < 500; i++ {
				fs := s.Step()
				lo, hi := fs.Phi.Range()
				Expect(lo).To(BeNumerically(">=", physics.PhiMin))
				Expect(hi).To(BeNumerically("<=", physics.PhiMax))
			}
		})

		It("spreads the impulse outward", func() {
			s.Run(20)
			psi := s.State().Psi
			Expect(psi.At(50, 50)).To(BeNumerically("<", 1.0))
			Expect(math.Abs(psi.At(50, 53))).To(BeNumerically(">", 0))
		})
	})

	Describe("the Higgs decay latch", func() {
		BeforeEach(func() {
			_, err := s.Reset(dynamo.HiggsDecay)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fires once the counter reaches Nx/3 and stays set", func() {
			s.Run(g.Nx/3 - 1)
			Expect(s.HiggsTriggered()).To(BeFalse())
			s.Step()
			Expect(s.HiggsTriggered()).To(BeTrue())

			for i := 0; i < 50; i++ {
				fs := s.Step()
				Expect(s.HiggsTriggered()).To(BeTrue())
				Expect(fs.K.MaxAbs()).To(BeZero())
			}
		})

		It("is cleared by re-entering the mode", func() {
			s.Run(g.Nx)
			Expect(s.Apply(sim.EntityEvent{Mode: dynamo.HiggsDecay})).To(Succeed())
			Expect(s.HiggsTriggered()).To(BeFalse())
			Expect(s.TimeStep()).To(BeZero())
		})
	})

	Describe("pausing", func() {
		It("freezes every field and the counter", func() {
			s.Reset(dynamo.PhotonTrail)
			s.Run(3)
			Expect(s.Apply(sim.TogglePauseEvent{})).To(Succeed())
			frozen := s.State().Clone()

			s.Run(25)
			Expect(s.State().Equal(frozen)).To(BeTrue())
			Expect(s.TimeStep()).To(Equal(3))

			Expect(s.Apply(sim.TogglePauseEvent{})).To(Succeed())
			s.Step()
			Expect(s.TimeStep()).To(Equal(4))
		})
	})

	Describe("invalid input", func() {
		It("rejects unknown modes without touching the state", func() {
			before := s.State().Clone()
			Expect(s.Apply(sim.EntityEvent{Mode: dynamo.EntityMode(12)})).To(MatchError(dynamo.ErrUnknownMode))
			Expect(s.Apply(sim.ViewEvent{Mode: dynamo.ViewMode(12)})).To(MatchError(dynamo.ErrUnknownMode))
			Expect(s.State().Equal(before)).To(BeTrue())
			Expect(s.View()).To(Equal(dynamo.Tension))
		})
	})
})
