package engine

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Game holds the entire game state. It is not safe for concurrent use; the
// caller serializes Perform calls per game.
type Game struct {
	Players         []*Player           `json:"players"`
	Deck            *Deck[DistrictName] `json:"-"`
	Characters      *Characters         `json:"characters"`
	Round           int                 `json:"round"`
	Crowned         PlayerIndex         `json:"crowned"`
	FirstToComplete PlayerIndex         `json:"first_to_complete"`
	Turn            Turn                `json:"-"`
	Followup        Followup            `json:"-"`
	TurnActions     []Action            `json:"-"`
	RemainingBuilds int                 `json:"remaining_builds"`
	Logs            []string            `json:"logs"`

	// Card-specific counters.
	Museum       []DistrictName `json:"-"`
	Alchemist    int            `json:"-"`
	TaxCollector int            `json:"tax_collector"`

	rng       *Prng
	abilities *AbilityRegistry
	logger    *zap.Logger
}

// Option configures a Game at Start.
type Option func(*Game)

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Start seats the lobby in random order, deals four cards each from a
// 68-card deck, selects the round's roles and begins the first draft.
func Start(lobby Lobby, seed uint64, abilities *AbilityRegistry, opts ...Option) (*Game, error) {
	n := len(lobby.Players)
	if n < MinPlayers || n > MaxPlayers {
		return nil, Illegal("a game needs %d to %d players, got %d", MinPlayers, MaxPlayers, n)
	}
	if abilities == nil {
		return nil, Illegal("no ability registry")
	}
	seenID := make(map[string]bool, n)
	seenName := make(map[string]bool, n)
	for _, p := range lobby.Players {
		if p.ID == "" || p.Name == "" {
			return nil, Illegal("players need an id and a name")
		}
		if seenID[p.ID] || seenName[p.Name] {
			return nil, Illegal("duplicate player %q", p.Name)
		}
		seenID[p.ID] = true
		seenName[p.Name] = true
	}

	rng := NewPrng(seed)

	seating := slices.Clone(lobby.Players)
	ShuffleSlice(rng, seating)
	players := make([]*Player, n)
	for i, p := range seating {
		players[i] = newPlayer(PlayerIndex(i), p.ID, p.Name)
	}

	uniques, err := lobby.Config.SelectUniqueDistricts(rng)
	if err != nil {
		return nil, Illegal("%v", err)
	}
	cards := append(BaseDistricts(), uniques...)
	ShuffleSlice(rng, cards)

	for _, p := range players {
		start := len(cards) - 4
		p.Hand = slices.Clone(cards[start:])
		cards = cards[:start]
	}

	roles, err := lobby.Config.SelectRoles(rng, n)
	if err != nil {
		return nil, Illegal("%v", err)
	}

	g := &Game{
		Players:         players,
		Deck:            NewDeck(cards),
		Characters:      NewCharacters(roles),
		Crowned:         0,
		FirstToComplete: NoPlayer,
		Turn:            GameOver{},
		rng:             rng,
		abilities:       abilities,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.logger.Info("game started",
		zap.Int("players", n),
		zap.Uint64("seed", seed),
		zap.Stringer("roles", g.Characters),
	)
	g.beginDraft()
	return g, nil
}

// Rng exposes the game's random source to action handlers.
func (g *Game) Rng() *Prng { return g.rng }

func (g *Game) Logger() *zap.Logger { return g.logger }

// Perform checks that actorID may take the action now, applies it, and
// advances the turn when the action ends it. A rejected action leaves the
// game unchanged.
func (g *Game) Perform(action Action, actorID string) error {
	if action == nil {
		return Illegal("no action")
	}
	tag := action.Tag()
	if !slices.Contains(g.AllowedFor(actorID), tag) {
		return Illegal("%s is not allowed", tag)
	}
	h, err := g.abilities.Get(tag)
	if err != nil {
		return err
	}

	out, err := h.Apply(g, action)
	if err != nil {
		g.logger.Debug("action rejected",
			zap.Stringer("tag", tag),
			zap.String("actor", actorID),
			zap.Error(err),
		)
		return err
	}

	g.Followup = out.Followup
	g.TurnActions = append(g.TurnActions, action)
	if role, err := g.ActiveRole(); err == nil {
		role.Logs = append(role.Logs, out.Log)
	} else {
		g.Logs = append(g.Logs, out.Log)
	}

	g.logger.Info(out.Log,
		zap.Int("round", g.Round),
		zap.Stringer("tag", tag),
		zap.String("actor", actorID),
	)
	if g.Followup != nil {
		g.logger.Debug("followup pending", zap.String("followup", fmt.Sprintf("%T", g.Followup)))
	}

	if out.EndTurn {
		g.endTurn()
	}
	return nil
}

// Draft returns the current draft, if the game is drafting.
func (g *Game) Draft() (*Draft, error) {
	d, ok := g.Turn.(*Draft)
	if !ok {
		return nil, Illegal("not drafting")
	}
	return d, nil
}

// Call returns the current call step, if the game is in the call phase.
func (g *Game) Call() (*Call, error) {
	c, ok := g.Turn.(*Call)
	if !ok {
		return nil, Illegal("no role is being called")
	}
	return c, nil
}

// ActiveRole is the roster slot being called.
func (g *Game) ActiveRole() (*GameRole, error) {
	call, err := g.Call()
	if err != nil {
		return nil, err
	}
	role := g.Characters.At(call.Index)
	if role == nil {
		return nil, Illegal("no role at index %d in the roster", call.Index)
	}
	return role, nil
}

// ActivePlayerIndex is the player who acts now. A bewitched role hands
// control to the Witch once it has gathered resources.
func (g *Game) ActivePlayerIndex() (PlayerIndex, error) {
	switch t := g.Turn.(type) {
	case *Draft:
		return t.Player, nil
	case *Call:
		c := g.Characters.At(t.Index)
		if c == nil {
			return NoPlayer, Illegal("no role at index %d in the roster", t.Index)
		}
		if g.HasGatheredResources() && c.Bewitched() {
			witch := g.Characters.Get(RoleWitch)
			if witch == nil || !witch.Occupied() {
				return NoPlayer, Illegal("no witch")
			}
			return witch.Player, nil
		}
		if !c.Occupied() {
			return NoPlayer, Illegal("no one holds the %s", c.Role)
		}
		return c.Player, nil
	default:
		return NoPlayer, Illegal("game over")
	}
}

func (g *Game) ActivePlayer() (*Player, error) {
	i, err := g.ActivePlayerIndex()
	if err != nil {
		return nil, err
	}
	return g.Players[i], nil
}

// RespondingPlayerIndex is the player who owes the pending followup.
func (g *Game) RespondingPlayerIndex() (PlayerIndex, error) {
	switch f := g.Followup.(type) {
	case nil:
		return NoPlayer, Illegal("no pending response")
	case FollowupWarrant:
		return f.Magistrate, nil
	case FollowupBlackmail:
		return f.Blackmailer, nil
	default:
		return g.ActivePlayerIndex()
	}
}

func (g *Game) RespondingPlayer() (*Player, error) {
	i, err := g.RespondingPlayerIndex()
	if err != nil {
		return nil, err
	}
	return g.Players[i], nil
}

// Player returns the player at a seat, or nil when out of range.
func (g *Game) Player(i PlayerIndex) *Player {
	if i < 0 || int(i) >= len(g.Players) {
		return nil
	}
	return g.Players[i]
}

func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByName resolves an action's player target.
func (g *Game) PlayerByName(name string) (*Player, error) {
	for _, p := range g.Players {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, Illegal("Player %q does not exist", name)
}

// CompleteCitySize is the city size that ends the game.
func (g *Game) CompleteCitySize() int {
	if len(g.Players) <= 3 {
		return 8
	}
	return 7
}

// PerformCount counts how often the tag was performed this turn.
func (g *Game) PerformCount(tag ActionTag) int {
	n := 0
	for _, a := range g.TurnActions {
		if a.Tag() == tag {
			n++
		}
	}
	return n
}

// HasBuilt reports whether a build already happened this turn.
func (g *Game) HasBuilt() bool {
	return slices.ContainsFunc(g.TurnActions, isBuildAction)
}

func isBuildAction(a Action) bool {
	switch v := a.(type) {
	case Build, *Build:
		return true
	case WizardPick:
		return v.Method.Kind != BuildTake
	case *WizardPick:
		return v.Method.Kind != BuildTake
	}
	return false
}

// DrawInto draws up to n cards into the player's hand and returns how many
// were drawn.
func (g *Game) DrawInto(p *Player, n int) int {
	drawn := g.Deck.DrawN(n)
	p.Hand = append(p.Hand, drawn...)
	return len(drawn)
}

// GainGoldForSuit pays the active player one gold per district of the suit.
func (g *Game) GainGoldForSuit(suit DistrictColor) (ActionOutput, error) {
	role, err := g.ActiveRole()
	if err != nil {
		return ActionOutput{}, err
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	amount := p.CountSuitForResourceGain(suit)
	p.Gold += amount
	return Output("The %s (%s) gains %d gold from their %s districts.", role.Role, p.Name, amount, suit), nil
}

// GainCardsForSuit draws the active player one card per district of the suit.
func (g *Game) GainCardsForSuit(suit DistrictColor) (ActionOutput, error) {
	role, err := g.ActiveRole()
	if err != nil {
		return ActionOutput{}, err
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	amount := g.DrawInto(p, p.CountSuitForResourceGain(suit))
	return Output("The %s (%s) gains %d cards from their %s districts.", role.Role, p.Name, amount, suit), nil
}

// DiscardDistrict sends a district leaving play to the bottom of the deck.
// A Museum takes its tucked cards with it.
func (g *Game) DiscardDistrict(d DistrictName) {
	if d != DistrictMuseum {
		g.Deck.DiscardToBottom(d)
		return
	}
	cards := append(g.Museum, DistrictMuseum)
	g.Museum = nil
	ShuffleSlice(g.rng, cards)
	for _, c := range cards {
		g.Deck.DiscardToBottom(c)
	}
}

// CompleteBuild puts the district into the player's city. Gold spent by the
// Alchemist is tracked for the end-of-turn refund.
func (g *Game) CompleteBuild(p *Player, spent int, d DistrictName) {
	p.City = append(p.City, CityDistrict{Name: d})
	if role, err := g.ActiveRole(); err == nil && role.Role == RoleAlchemist {
		g.Alchemist += spent
	}
	g.CheckCityForCompletion(p)
}

// CheckCityForCompletion records the first player to complete their city.
func (g *Game) CheckCityForCompletion(p *Player) {
	if g.FirstToComplete == NoPlayer && p.CitySize() >= g.CompleteCitySize() {
		g.FirstToComplete = p.Index
		g.logger.Info("city completed", zap.String("player", p.Name), zap.Int("round", g.Round))
	}
}

// AfterGatherResources returns the followup owed once resources are gathered.
func (g *Game) AfterGatherResources() Followup {
	switch g.ForcedToGatherResources() {
	case ForcedWitch:
		return FollowupBewitch{}
	case ForcedBlackmailed:
		return FollowupHandleBlackmail{}
	}
	return nil
}

// RoleHolder returns the occupant of a role in play.
func (g *Game) RoleHolder(r CharacterRole) (*Player, error) {
	slot := g.Characters.Get(r)
	if slot == nil || !slot.Occupied() {
		return nil, Illegal("no one holds the %s", r)
	}
	return g.Players[slot.Player], nil
}

func (g *Game) beginDraft() {
	g.Round++
	d := BeginDraft(len(g.Players), g.Crowned, g.Characters.Roles(), g.rng)
	for _, r := range d.FaceupDiscard {
		if slot := g.Characters.Get(r); slot != nil {
			slot.Markers = append(slot.Markers, Marker{Kind: MarkerDiscarded})
		}
	}
	g.Turn = d
	g.logger.Debug("draft begins",
		zap.Int("round", g.Round),
		zap.Int("crowned", int(g.Crowned)),
		zap.Int("faceup", len(d.FaceupDiscard)),
	)
}

func (g *Game) startTurn() {
	for {
		call, ok := g.Turn.(*Call)
		if !ok || call.EndOfRound {
			return
		}
		c := g.Characters.At(call.Index)

		if c.Killed() {
			c.Logs = append(c.Logs, "They were killed!")
			g.callNext()
			continue
		}
		if !c.Occupied() {
			c.Logs = append(c.Logs, "No one responds")
			g.callNext()
			continue
		}

		c.Revealed = true
		g.RemainingBuilds = c.Role.BuildLimit()
		player := g.Players[c.Player]
		c.Logs = append(c.Logs, fmt.Sprintf("%s starts their turn.", player.Name))

		if c.Bewitched() {
			if witch, err := g.RoleHolder(RoleWitch); err == nil {
				c.Logs = append(c.Logs, fmt.Sprintf(
					"They are bewitched! After gathering resources, their turn will be yielded to the Witch (%s).", witch.Name))
			}
		}

		if c.HasMarker(MarkerRobbed) {
			if thief, err := g.RoleHolder(RoleThief); err == nil {
				gold := player.Gold
				player.Gold = 0
				thief.Gold += gold
				c.Logs = append(c.Logs, fmt.Sprintf("The Thief (%s) takes all %d of their gold!", thief.Name, gold))
			}
		}
		g.logger.Debug("turn starts", zap.Stringer("role", c.Role), zap.String("player", player.Name))
		return
	}
}

func (g *Game) endTurn() {
	g.TurnActions = nil

	switch t := g.Turn.(type) {
	case GameOver:
	case *Draft:
		if t.TheaterStep {
			g.Turn = &Call{}
			break
		}
		g.advanceDraft(t)
	case *Call:
		if t.EndOfRound {
			g.endRound()
			break
		}
		g.applyEndOfTurnPassives()
		g.callNext()
	}
	g.startTurn()
}

func (g *Game) advanceDraft(d *Draft) {
	n := len(g.Players)
	// three players with nine roles lose one random role after the first pass
	if n == 3 && g.Characters.Len() == 9 && len(d.Remaining) == 5 {
		i := g.rng.IntN(len(d.Remaining))
		d.Remaining = slices.Delete(d.Remaining, i, i+1)
	}
	// the last player chooses between the final role and the face-down discard
	if n+1 == g.Characters.Len() && len(d.Remaining) == 1 && d.InitialDiscard != RoleNone {
		d.Remaining = append(d.Remaining, d.InitialDiscard)
		d.InitialDiscard = RoleNone
	}

	quota := 1
	if n <= 3 {
		quota = 2
	}
	done := true
	for _, p := range g.Players {
		if len(p.Roles) != quota {
			done = false
			break
		}
	}
	if !done {
		d.Player = PlayerIndex((int(d.Player) + 1) % n)
		return
	}
	for _, p := range g.Players {
		if p.CityHas(DistrictTheater) {
			d.Player = p.Index
			d.TheaterStep = true
			return
		}
	}
	g.Turn = &Call{}
}

func (g *Game) applyEndOfTurnPassives() {
	role, err := g.ActiveRole()
	if err != nil {
		return
	}
	player, err := g.ActivePlayer()
	if err != nil {
		return
	}
	if role.Role != RoleWitch && player.Gold == 0 && player.CityHas(DistrictPoorHouse) {
		player.Gold++
		role.Logs = append(role.Logs, fmt.Sprintf("%s gains 1 gold from their Poor House.", player.Name))
	}
	if role.Role != RoleWitch && len(player.Hand) == 0 && player.CityHas(DistrictPark) {
		g.DrawInto(player, 2)
		role.Logs = append(role.Logs, fmt.Sprintf("%s gains 2 cards from their Park.", player.Name))
	}
	if refund := g.Alchemist; refund > 0 {
		g.Alchemist = 0
		player.Gold += refund
		role.Logs = append(role.Logs, fmt.Sprintf("The Alchemist is refunded %d gold spent building.", refund))
	}
}

// callNext moves to the next roster slot. After the last slot a killed
// Emperor's heir gets a final step to pass the crown; otherwise the round ends.
func (g *Game) callNext() {
	call, ok := g.Turn.(*Call)
	if !ok {
		return
	}
	if next, ok := g.Characters.Next(call.Index); ok {
		g.Turn = &Call{Index: next}
		return
	}
	for i, slot := range g.Characters.Slots() {
		if slot.Role == RoleEmperor && slot.Occupied() && slot.Killed() {
			g.Turn = &Call{Index: i, EndOfRound: true}
			return
		}
	}
	g.endRound()
}

func (g *Game) endRound() {
	for _, slot := range g.Characters.Slots() {
		if slot.Killed() && slot.Occupied() && (slot.Role == RoleKing || slot.Role == RolePatrician) {
			g.Crowned = slot.Player
			g.Logs = append(g.Logs, fmt.Sprintf("%s's heir %s crowned.", slot.Role, g.Players[slot.Player].Name))
			break
		}
	}

	if g.FirstToComplete != NoPlayer {
		g.Turn = GameOver{}
		g.Logs = append(g.Logs, "The game is over.")
		g.logger.Info("game over", zap.Int("round", g.Round))
		return
	}

	g.Characters.cleanup()
	for _, p := range g.Players {
		p.cleanupRound()
	}
	g.beginDraft()
}
