package domain

import "time"

// Receipt is returned per ballot type actually cast. The confirmation code is
// a random token for voter reassurance, not a proof of ballot content.
type Receipt struct {
	BallotType       BallotType `json:"ballotType"`
	ConfirmationCode string     `json:"confirmationCode"`
	Timestamp        time.Time  `json:"timestamp"`
}

// VoteStatus tells a voter whether (and with which ballot types) they already
// cast in an election.
type VoteStatus struct {
	HasVoted    bool         `json:"hasVoted"`
	BallotTypes []BallotType `json:"ballotTypes"`
	VotedAt     *time.Time   `json:"votedAt,omitempty"`
}

type PartyResult struct {
	PartyID     PartyID `json:"partyId"`
	PartyName   string  `json:"partyName"`
	PartyNameTh string  `json:"partyNameTh"`
	PartyColor  string  `json:"partyColor"`
	VoteCount   int64   `json:"voteCount"`
	Percentage  float64 `json:"percentage"`
}

type ReferendumResult struct {
	QuestionID           QuestionID `json:"questionId"`
	QuestionText         string     `json:"questionText"`
	ApproveCount         int64      `json:"approveCount"`
	DisapproveCount      int64      `json:"disapproveCount"`
	AbstainCount         int64      `json:"abstainCount"`
	ApprovePercentage    float64    `json:"approvePercentage"`
	DisapprovePercentage float64    `json:"disapprovePercentage"`
	Result               string     `json:"result"`
}

type CandidateResult struct {
	CandidateID   CandidateID `json:"candidateId"`
	CandidateName string      `json:"candidateName"`
	PartyName     string      `json:"partyName,omitempty"`
	PartyColor    string      `json:"partyColor,omitempty"`
	VoteCount     int64       `json:"voteCount"`
	Percentage    float64     `json:"percentage"`
	IsWinner      bool        `json:"isWinner"`
}

type DistrictResult struct {
	DistrictID        DistrictID        `json:"districtId"`
	DistrictName      string            `json:"districtName"`
	ProvinceName      string            `json:"provinceName"`
	VoterCount        int               `json:"voterCount"`
	TotalVotes        int64             `json:"totalVotes"`
	TurnoutPercentage float64           `json:"turnoutPercentage"`
	Candidates        []CandidateResult `json:"candidates"`
	Winner            *CandidateResult  `json:"winner"`
}

// ElectionResults is a point-in-time aggregate recomputed from the vote
// ledger on every call.
type ElectionResults struct {
	ElectionID          ElectionID         `json:"electionId"`
	ElectionName        string             `json:"electionName"`
	Status              ElectionStatus     `json:"status"`
	LastUpdated         time.Time          `json:"lastUpdated"`
	TotalEligibleVoters int64              `json:"totalEligibleVoters"`
	TotalVotesCast      int64              `json:"totalVotesCast"`
	TurnoutPercentage   float64            `json:"turnoutPercentage"`
	PartyListResults    []PartyResult      `json:"partyListResults"`
	ReferendumResults   []ReferendumResult `json:"referendumResults"`
}

// ResultSnapshot is the payload pushed to result-stream subscribers.
type ResultSnapshot struct {
	Event        string        `json:"event"`
	ElectionID   ElectionID    `json:"electionId"`
	Timestamp    time.Time     `json:"timestamp"`
	TotalVotes   int64         `json:"totalVotes"`
	PartyResults []PartyResult `json:"partyResults"`
}
