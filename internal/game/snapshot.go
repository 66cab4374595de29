package game

import (
	"github.com/lox/blackjacktrainer/internal/count"
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/stats"
)

// HandView is the render-ready projection of one player hand.
type HandView struct {
	Cards   []deck.Card
	Display string
	Value   int
	Bet     int
	Status  HandStatus
	Result  HandResult
	Active  bool
}

// SpotView is the render-ready projection of one betting spot.
type SpotView struct {
	Bet   int
	Hands []HandView
}

// DealerView is the dealer's cards with the hole card concealment flag.
// Display is empty while the hole card is hidden.
type DealerView struct {
	Cards      []deck.Card
	HoleHidden bool
	Display    string
	Value      int
}

// Snapshot is a point-in-time read model of the session for rendering.
// It carries no references into live state; the presentation layer can
// hold it across frames safely.
type Snapshot struct {
	Identity string
	Phase    Phase
	Message  string
	Complete bool

	Bankroll int
	NumDecks int
	ShoeSize int
	LowCards bool

	Dealer     DealerView
	Spots      []SpotView
	ActiveSpot int
	ActiveHand int

	RunningCount   int
	TrueCount      float64
	DecksRemaining float64
	CountHistory   []count.Entry

	Stats       stats.SessionStats
	HandHistory []HandHistoryEntry
}

// lowCardThreshold is the shoe size below which the UI warns that the
// session is about to end.
const lowCardThreshold = 15

// Snapshot captures the current session state for rendering.
func (s *Session) Snapshot() Snapshot {
	snapshot := Snapshot{
		Identity:     s.identity,
		Phase:        PhaseBetting,
		Complete:     s.complete,
		Bankroll:     s.bankroll.Balance(),
		NumDecks:     s.numDecks,
		RunningCount: s.counter.Running(),
		CountHistory: s.counter.History(),
		Stats:        s.sessionStats,
		HandHistory:  s.History(),
	}

	if s.shoe != nil {
		snapshot.ShoeSize = s.shoe.Remaining()
		snapshot.DecksRemaining = count.DecksRemaining(s.shoe.Remaining())
		snapshot.TrueCount = count.TrueCount(s.counter.Running(), snapshot.DecksRemaining)
		snapshot.LowCards = snapshot.ShoeSize < lowCardThreshold
	}

	if s.round == nil {
		return snapshot
	}

	snapshot.Phase = s.round.Phase()
	snapshot.Message = s.round.Message()
	snapshot.ActiveSpot, snapshot.ActiveHand = s.round.ActivePosition()

	dealerCards, holeHidden := s.round.Dealer()
	snapshot.Dealer = DealerView{Cards: dealerCards, HoleHidden: holeHidden}
	if len(dealerCards) > 0 && !holeHidden {
		info := EvaluateHand(dealerCards)
		snapshot.Dealer.Display = info.Display
		snapshot.Dealer.Value = info.Value
	}

	for spotIdx, spot := range s.round.Spots() {
		spotView := SpotView{Bet: spot.Bet}
		for handIdx, hand := range spot.Hands {
			info := hand.Info()
			spotView.Hands = append(spotView.Hands, HandView{
				Cards:   append([]deck.Card(nil), hand.Cards...),
				Display: info.Display,
				Value:   info.Value,
				Bet:     hand.Bet,
				Status:  hand.Status,
				Result:  hand.Result,
				Active:  spotIdx == snapshot.ActiveSpot && handIdx == snapshot.ActiveHand,
			})
		}
		snapshot.Spots = append(snapshot.Spots, spotView)
	}

	return snapshot
}
