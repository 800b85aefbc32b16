package domain

// Plan describes a subscription tier
type Plan struct {
	Name    string // Display name
	Price   string // Monthly price
	Credits int    // Credits granted per month
}

// Plans lists the available tiers, cheapest first
var Plans = []Plan{
	{Name: "Commoner", Price: "FREE", Credits: DefaultCredits},
	{Name: "Noble", Price: "$3/month", Credits: 250},
	{Name: "Royal", Price: "$9/month", Credits: 1000},
}
