/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive
package handler

import (
	"net/http"

	"github.com/unikorn-cloud/accounts/pkg/server/handler/users"
	service "github.com/unikorn-cloud/accounts/pkg/users"
	"github.com/unikorn-cloud/core/pkg/server/errors"
	"github.com/unikorn-cloud/core/pkg/server/util"
)

type Handler struct {
	// service holds accounts and sessions.
	service *service.Service
}

func New(s *service.Service) (*Handler, error) {
	h := &Handler{
		service: s,
	}

	return h, nil
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) usersClient() *users.Client {
	return users.NewClient(h.service)
}

func (h *Handler) PostApiUsers(w http.ResponseWriter, r *http.Request) {
	request := &users.RegisterRequest{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("Bad json").WithError(err))
		return
	}

	result, err := h.usersClient().Register(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PostApiUsersLogin(w http.ResponseWriter, r *http.Request) {
	request := &users.LoginRequest{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("Bad json").WithError(err))
		return
	}

	result, err := h.usersClient().Login(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PostApiUsersLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.usersClient().Logout(r.Context(), r.Header.Get("Authorization")); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, "ok")
}

func (h *Handler) PostApiUsersForgot(w http.ResponseWriter, r *http.Request) {
	request := &users.ForgotRequest{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("Bad request").WithError(err))
		return
	}

	if err := h.usersClient().ForgotPassword(r.Context(), request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, "ok")
}
