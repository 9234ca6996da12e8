package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jusunglee/unicodeutil/internal/blocks"
	"github.com/jusunglee/unicodeutil/internal/dataset"
	"github.com/jusunglee/unicodeutil/internal/ucd"
	"github.com/samber/lo"
)

type BlocksHandler struct {
	ds  *dataset.Dataset
	log *slog.Logger
}

func NewBlocksHandler(ds *dataset.Dataset, log *slog.Logger) *BlocksHandler {
	return &BlocksHandler{ds: ds, log: log}
}

type blockResponse struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

// blockSlug is the URL form of a block name, e.g. "Basic Latin" ->
// "basic-latin".
func blockSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// List serves GET /api/v1/blocks.
func (h *BlocksHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lo.Map(h.ds.Blocks.All(), func(b blocks.Block, _ int) blockResponse {
		return blockResponse{
			First: formatCodepoint(b.Lo),
			Last:  formatCodepoint(b.Hi),
			Name:  b.Name,
			Slug:  blockSlug(b.Name),
		}
	}))
}

type blockMemberResponse struct {
	Codepoint string `json:"codepoint"`
	Char      string `json:"char"`
	Name      string `json:"name"`
}

type blockMembersResponse struct {
	Block   string                `json:"block"`
	Members []blockMemberResponse `json:"members"`
}

// Members serves GET /api/v1/blocks/{slug}, listing the assigned
// characters inside the block.
func (h *BlocksHandler) Members(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	block, found := lo.Find(h.ds.Blocks.All(), func(b blocks.Block) bool {
		return blockSlug(b.Name) == slug
	})
	if !found {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}

	members := []blockMemberResponse{}
	for cp := block.Lo; cp <= block.Hi; cp++ {
		c, err := h.ds.Chars.ByCodepoint(cp)
		if err != nil {
			if errors.Is(err, ucd.ErrNotFound) || errors.Is(err, ucd.ErrInvalidCodePoint) {
				continue // unassigned
			}
			h.log.ErrorContext(r.Context(), "block member lookup", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		members = append(members, blockMemberResponse{
			Codepoint: formatCodepoint(cp),
			Char:      string(cp),
			Name:      c.Name,
		})
	}
	writeJSON(w, http.StatusOK, blockMembersResponse{Block: block.Name, Members: members})
}
