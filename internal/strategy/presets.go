package strategy

// Conservative rides only made paying hands and the strongest draws.
func Conservative() *Custom {
	return MustCustom("conservative", []Rule{
		{When: "has_paying_hand", Decision: Ride},
		{When: "is_royal_draw", Decision: Ride},
		{When: "four_flush", Decision: Ride},
		{When: "default", Decision: Pull},
	})
}

// Aggressive rides any pair, any three-to-a-suit, and live straight
// draws, accepting more variance for the big paytable hits.
func Aggressive() *Custom {
	return MustCustom("aggressive", []Rule{
		{When: "has_paying_hand", Decision: Ride},
		{When: "has_pair", Decision: Ride},
		{When: "is_royal_draw", Decision: Ride},
		{When: "suited_count >= 3", Decision: Ride},
		{When: "open_straight", Decision: Ride},
		{When: "high_cards >= 2", Decision: Ride},
		{When: "default", Decision: Pull},
	})
}
