package models

import "time"

// Category is seed data: the application only ever reads it.
type Category struct {
	Prayer_Category_ID int       `json:"prayerCategoryId" goqu:"skipinsert"`
	Category_Key       string    `json:"key"`
	Name_En            string    `json:"nameEn"`
	Name_Ko            string    `json:"nameKo"`
	Datetime_Create    time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}
