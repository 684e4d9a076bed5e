// Copyright © 2021 Io FinNet Group, Inc.

package server

import (
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/iofinnet/dhlab/color"
	"github.com/iofinnet/dhlab/dh"
)

// number accepts a JSON string or a bare JSON number and keeps its literal text,
// so that "23" and 23 are validated by the same decimal-digit rule.
type number string

func (n *number) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = number(s)
		return nil
	}
	if string(b) == "null" {
		*n = ""
		return nil
	}
	*n = number(b)
	return nil
}

type (
	setBaseRequest struct {
		BaseColor string `json:"baseColor"`
	}
	setBaseResponse struct {
		Status         string `json:"status"`
		ConfirmedColor string `json:"confirmedColor"`
	}

	mixRequest struct {
		Color1 string `json:"color1"`
		Color2 string `json:"color2"`
	}
	mixResponse struct {
		MixedColor string   `json:"mixedColor"`
		Components []string `json:"components"`
	}

	finalRequest struct {
		BaseColor   string `json:"baseColor"`
		AliceSecret string `json:"aliceSecret"`
		BobSecret   string `json:"bobSecret"`
	}
	finalResponse struct {
		FinalColor   string   `json:"finalColor"`
		Components   []string `json:"components"`
		Intermediate string   `json:"intermediate"`
	}

	paramsRequest struct {
		Prime     number `json:"prime"`
		Generator number `json:"generator"`
	}
	paramsResponse struct {
		Status        string   `json:"status"`
		P             *big.Int `json:"p"`
		G             *big.Int `json:"g"`
		Order         uint64   `json:"order"`
		PrimitiveRoot bool     `json:"primitiveRoot"`
	}

	publicKeyRequest struct {
		Prime     number `json:"prime"`
		Generator number `json:"generator"`
		Secret    number `json:"secret"`
	}
	publicKeyResponse struct {
		Public *big.Int `json:"public"`
	}

	sharedSecretRequest struct {
		Prime          number `json:"prime"`
		Secret         number `json:"secret"`
		ReceivedPublic number `json:"received_public"`
	}
	sharedSecretResponse struct {
		Shared *big.Int `json:"shared"`
	}

	discreteExpRequest struct {
		Base number `json:"base"`
		Exp  number `json:"exp"`
		Mod  number `json:"mod"`
	}
	discreteExpResponse struct {
		Result *big.Int `json:"result"`
	}

	discreteLogRequest struct {
		Base   number `json:"base"`
		Result number `json:"result"`
		Mod    number `json:"mod"`
	}
	discreteLogResponse struct {
		Log *big.Int `json:"log"`
	}

	suggestRequest struct {
		Bits number `json:"bits"`
	}
	suggestResponse struct {
		P             *big.Int `json:"p"`
		G             *big.Int `json:"g"`
		Order         uint64   `json:"order"`
		PrimitiveRoot bool     `json:"primitiveRoot"`
		SecretA       *big.Int `json:"secretA"`
		SecretB       *big.Int `json:"secretB"`
	}
)

func (s *Server) handleSetBase(w http.ResponseWriter, r *http.Request) {
	var req setBaseRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := color.ConfirmBase(req.BaseColor); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, setBaseResponse{Status: "ok", ConfirmedColor: req.BaseColor})
}

func (s *Server) handleMix(w http.ResponseWriter, r *http.Request) {
	var req mixRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := color.Mix(req.Color1, req.Color2)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mixResponse{MixedColor: res.Mixed.Hex(), Components: res.Components})
}

func (s *Server) handleFinal(w http.ResponseWriter, r *http.Request) {
	var req finalRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := color.Final(req.BaseColor, req.AliceSecret, req.BobSecret)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, finalResponse{
		FinalColor:   res.Final.Hex(),
		Components:   res.Components,
		Intermediate: res.Intermediate.Hex(),
	})
}

func (s *Server) handleSetParams(w http.ResponseWriter, r *http.Request) {
	var req paramsRequest
	if !s.decode(w, r, &req) {
		return
	}
	params, err := dh.NewParameters(string(req.Prime), string(req.Generator))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, paramsResponse{
		Status:        "ok",
		P:             params.Modulus(),
		G:             params.Generator(),
		Order:         params.GeneratorOrder(),
		PrimitiveRoot: params.IsPrimitiveRoot(),
	})
}

func (s *Server) handlePublicKey(w http.ResponseWriter, r *http.Request) {
	var req publicKeyRequest
	if !s.decode(w, r, &req) {
		return
	}
	public, err := dh.PublicValue(string(req.Prime), string(req.Generator), string(req.Secret))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, publicKeyResponse{Public: public})
}

func (s *Server) handleSharedSecret(w http.ResponseWriter, r *http.Request) {
	var req sharedSecretRequest
	if !s.decode(w, r, &req) {
		return
	}
	shared, err := dh.SharedValue(string(req.Prime), string(req.Secret), string(req.ReceivedPublic))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sharedSecretResponse{Shared: shared})
}

func (s *Server) handleDiscreteExp(w http.ResponseWriter, r *http.Request) {
	var req discreteExpRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := dh.DiscreteExp(string(req.Base), string(req.Exp), string(req.Mod))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, discreteExpResponse{Result: result})
}

func (s *Server) handleDiscreteLog(w http.ResponseWriter, r *http.Request) {
	var req discreteLogRequest
	if !s.decode(w, r, &req) {
		return
	}
	x, err := dh.DiscreteLog(string(req.Base), string(req.Result), string(req.Mod))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, discreteLogResponse{Log: x})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !s.decode(w, r, &req) {
		return
	}
	sug, err := dh.Suggest(string(req.Bits))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, suggestResponse{
		P:             sug.Params.Modulus(),
		G:             sug.Params.Generator(),
		Order:         sug.Params.GeneratorOrder(),
		PrimitiveRoot: sug.Params.IsPrimitiveRoot(),
		SecretA:       sug.SecretA,
		SecretB:       sug.SecretB,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
