package catalog

// Models lists every table of the catalog in migration order.
func Models() []any {
	return []any{
		&Change{},

		&Book{}, &BookHist{}, &BookTitle{}, &BookTitleHist{},
		&BookEdition{}, &BookEditionHist{}, &BookStaffAlias{}, &BookStaffAliasHist{},

		&Series{}, &SeriesHist{}, &SeriesTitle{}, &SeriesTitleHist{},
		&SeriesBook{}, &SeriesBookHist{}, &SeriesRelation{}, &SeriesRelationHist{},

		&Staff{}, &StaffHist{}, &StaffAlias{}, &StaffAliasHist{},

		&Publisher{}, &PublisherHist{}, &PublisherRelation{}, &PublisherRelationHist{},

		&Release{}, &ReleaseHist{}, &ReleaseBook{}, &ReleaseBookHist{},
		&ReleasePublisher{}, &ReleasePublisherHist{},
	}
}
