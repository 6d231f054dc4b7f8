package domain

import "time"

type User struct {
	UUID     string   `bson:"_id" json:"uuid"`
	Username string   `bson:"username" json:"username"`
	Password string   `bson:"pw" json:"pw"`
	Voting   *Voting  `bson:"voting,omitempty" json:"voting,omitempty"`
	Votings  []Voting `bson:"votings,omitempty" json:"votings,omitempty"`
}

type Voting struct {
	UUID        string    `bson:"uuid" json:"uuid"`
	ProdID      string    `bson:"prodID" json:"prodID"`
	Rating      float64   `bson:"rating" json:"rating"`
	Lat         float64   `bson:"lat" json:"lat"`
	Lng         float64   `bson:"lng" json:"lng"`
	StoreName   string    `bson:"storeName" json:"storeName"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
}

// ProductRefs returns the distinct product ids the user has voted on, in
// first-seen order.
func (u User) ProductRefs() []string {
	seen := make(map[string]struct{})
	var refs []string

	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		refs = append(refs, id)
	}

	if u.Voting != nil {
		add(u.Voting.ProdID)
	}
	for _, v := range u.Votings {
		add(v.ProdID)
	}

	return refs
}
