package models

import "time"

type Response struct {
	Response_ID      int       `json:"responseId" goqu:"skipinsert"`
	Prayer_ID        int       `json:"prayerId"`
	Response_Content string    `json:"content"`
	Is_Shared        bool      `json:"isShared"`
	Responder_ID     int       `json:"responderId"`
	Datetime_Create  time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type ResponseCreate struct {
	Content       string `json:"content"`
	Share_Consent bool   `json:"shareConsent"`
}
