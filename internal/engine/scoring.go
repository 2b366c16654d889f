package engine

// ScoreEntry holds the scoring breakdown for one player.
type ScoreEntry struct {
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	DistrictScore int    `json:"district_score"`
	ColorBonus    int    `json:"color_bonus"`
	FirstComplete int    `json:"first_complete"`
	OtherComplete int    `json:"other_complete"`
	SpecialBonus  int    `json:"special_bonus"`
	HiddenBonus   int    `json:"hidden_bonus,omitempty"`
	Public        int    `json:"public"`
	Total         int    `json:"total"`
}

// PublicScore is the score everyone can see. A Haunted Quarter counts as
// whichever suit scores best.
func (g *Game) PublicScore(p *Player) int {
	return g.scoreBreakdown(p).Public
}

// TotalScore adds 3 per Secret Vault still in hand to the public score.
func (g *Game) TotalScore(p *Player) int {
	return g.scoreBreakdown(p).Total
}

// CalculateScores computes the breakdown for every player in seat order.
func (g *Game) CalculateScores() []ScoreEntry {
	entries := make([]ScoreEntry, len(g.Players))
	for i, p := range g.Players {
		entries[i] = g.scoreBreakdown(p)
	}
	return entries
}

func (g *Game) scoreBreakdown(p *Player) ScoreEntry {
	var best ScoreEntry
	if p.CityHas(DistrictHauntedQuarter) {
		for i, suit := range AllColors() {
			e := g.scoreAs(p, suit)
			if i == 0 || e.Public > best.Public {
				best = e
			}
		}
	} else {
		best = g.scoreAs(p, ColorNone)
	}

	for _, d := range p.Hand {
		if d == DistrictSecretVault {
			best.HiddenBonus += 3
		}
	}
	best.Total = best.Public + best.HiddenBonus
	return best
}

// scoreAs scores the city with the Haunted Quarter counted as haunted.
func (g *Game) scoreAs(p *Player, haunted DistrictColor) ScoreEntry {
	e := ScoreEntry{PlayerID: p.ID, PlayerName: p.Name}

	counts := make(map[DistrictColor]int, 5)
	if haunted != ColorNone {
		counts[haunted]++
	}
	for _, d := range p.City {
		if d.Name != DistrictSecretVault {
			e.DistrictScore += d.EffectiveCost()
		}
		if d.Name != DistrictHauntedQuarter {
			counts[d.Name.Suit()]++
		}
	}

	for _, d := range p.City {
		switch d.Name {
		case DistrictDragonGate:
			e.SpecialBonus += 2
		case DistrictMapRoom:
			e.SpecialBonus += len(p.Hand)
		case DistrictImperialTreasury:
			e.SpecialBonus += p.Gold
		case DistrictStatue:
			if p.Index == g.Crowned {
				e.SpecialBonus += 5
			}
		case DistrictCapitol:
			for _, n := range counts {
				if n >= 3 {
					e.SpecialBonus += 3
					break
				}
			}
		case DistrictIvoryTower:
			if counts[ColorUnique] == 1 {
				e.SpecialBonus += 5
			}
		case DistrictWishingWell:
			e.SpecialBonus += counts[ColorUnique]
		case DistrictMuseum:
			e.SpecialBonus += len(g.Museum)
		case DistrictBasilica:
			for _, c := range p.City {
				if c.EffectiveCost()%2 == 1 {
					e.SpecialBonus++
				}
			}
		}
	}

	e.ColorBonus = 3
	for _, suit := range AllColors() {
		if counts[suit] == 0 {
			e.ColorBonus = 0
			break
		}
	}

	if g.FirstToComplete == p.Index {
		e.FirstComplete = 4
	} else if p.CitySize() >= g.CompleteCitySize() {
		e.OtherComplete = 2
	}

	e.Public = e.DistrictScore + e.ColorBonus + e.FirstComplete + e.OtherComplete + e.SpecialBonus
	return e
}
