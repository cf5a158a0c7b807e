package service

import "sort"

func sortFeed(feed []FeedItem) {
	sort.SliceStable(feed, func(i, j int) bool {
		if !feed[i].CreatedAt.Equal(feed[j].CreatedAt) {
			return feed[i].CreatedAt.Before(feed[j].CreatedAt)
		}
		return feed[i].FundraiserID < feed[j].FundraiserID
	})
}
